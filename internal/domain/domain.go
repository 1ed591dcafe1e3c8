package domain

// Chunk is a fixed-size slice of a document's normalized text. It is
// immutable once created: the store hands out copies, never live views.
type Chunk struct {
	// Text is the trimmed window content.
	Text string
	// Source is the document label the chunk came from (a filename,
	// usually). Not required to be unique across chunks.
	Source string
	// Index is the global sequence number, strictly increasing across
	// every document added to a store until it is cleared.
	Index int
}

// ScoredChunk pairs a chunk with its relevance score for one query.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Result is the outcome of a single retrieval call. It carries both the
// ranked chunks and the provenance resolved from them, so a caller never
// has to correlate a separate sources lookup with the query it ran.
type Result struct {
	// Chunks is sorted by score descending, ties broken by ascending
	// chunk index.
	Chunks []ScoredChunk
	// Sources lists the unique source labels of Chunks in first-seen
	// order. Empty when Chunks is empty.
	Sources []string
}

// Texts returns just the chunk texts of the result, in rank order.
func (r Result) Texts() []string {
	if len(r.Chunks) == 0 {
		return nil
	}
	out := make([]string, len(r.Chunks))
	for i, sc := range r.Chunks {
		out[i] = sc.Chunk.Text
	}
	return out
}

// Chunker splits normalized text into chunks suitable for retrieval.
type Chunker interface {
	// Chunk slices text into chunks labeled with source, numbering them
	// sequentially starting at next.
	Chunk(text, source string, next int) []Chunk
}
