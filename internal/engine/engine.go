// Package engine ties the normalizer, chunker, store, tokenizer and
// scorer into the retrieval core: documents go in as plain text, ranked
// chunk sets with provenance come back out.
package engine

import (
	"sort"
	"sync"

	"recall/internal/domain"
	"recall/internal/normalizer"
	"recall/internal/scorer"
	"recall/internal/store"
	"recall/internal/tokenizer"
)

// DefaultTopK is the number of chunks a retrieval returns when the
// caller does not ask for a specific count.
const DefaultTopK = 3

// Engine is the in-memory lexical retrieval engine. It performs no I/O
// and spawns nothing; all operations are synchronous and CPU-bound.
// Methods are safe for concurrent use, but the Sources contract still
// requires that a caller not interleave Retrieve calls from concurrent
// requests if it wants Sources to describe its own retrieval — prefer
// the Sources field on the returned Result, which has no such hazard.
type Engine struct {
	chunker domain.Chunker
	store   *store.Store

	// mu serializes ingestion (chunk numbering depends on the store
	// count observed under the same lock) and guards lastSources.
	mu          sync.Mutex
	lastSources []string
}

// New creates an engine around the given chunker.
func New(chunker domain.Chunker) *Engine {
	return &Engine{chunker: chunker, store: store.New()}
}

// AddDocument normalizes text, chunks it, and appends the chunks to the
// store labeled with source. It returns the number of chunks added;
// empty or whitespace-only text adds nothing and returns 0.
func (e *Engine) AddDocument(text, source string) int {
	cleaned := normalizer.Normalize(text)
	if cleaned == "" {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	chunks := e.chunker.Chunk(cleaned, source, e.store.Count())
	e.store.Append(chunks...)
	return len(chunks)
}

// Retrieve scores every stored chunk against the query and returns the
// top n by score, ties broken by ascending chunk index. n <= 0 means
// DefaultTopK. A query with no usable tokens, an empty store, or no
// positive-scoring chunk yields an empty result. Every call overwrites
// the provenance cache read by Sources, including calls that return
// nothing.
func (e *Engine) Retrieve(query string, n int) domain.Result {
	if n <= 0 {
		n = DefaultTopK
	}
	qset := tokenizer.Set(tokenizer.Tokenize(query))
	if len(qset) == 0 {
		return e.finish(nil)
	}

	var scored []domain.ScoredChunk
	for _, ch := range e.store.All() {
		s := scorer.ScoreSets(qset, tokenizer.Set(tokenizer.Tokenize(ch.Text)))
		if s > 0 {
			scored = append(scored, domain.ScoredChunk{Chunk: ch, Score: s})
		}
	}
	if len(scored) == 0 {
		return e.finish(nil)
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Chunk.Index < scored[j].Chunk.Index
	})
	if len(scored) > n {
		scored = scored[:n]
	}
	return e.finish(scored)
}

// finish resolves provenance for the ranked chunks, stores it as the
// last-retrieved cache, and assembles the result.
func (e *Engine) finish(scored []domain.ScoredChunk) domain.Result {
	sources := uniqueSources(scored)
	e.mu.Lock()
	e.lastSources = sources
	e.mu.Unlock()
	return domain.Result{Chunks: scored, Sources: sources}
}

// Sources returns the unique source labels of the chunks returned by
// the most recent Retrieve call, in first-seen rank order. It reports on
// the previous retrieval only: call it right after Retrieve, or use the
// Sources field of the Result instead. Before any retrieval, or after
// one that matched nothing, it returns an empty list.
func (e *Engine) Sources() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.lastSources))
	copy(out, e.lastSources)
	return out
}

// AllChunks returns a snapshot of every stored chunk in insertion
// order, unranked. Collaborators use it for non-ranked sampling.
func (e *Engine) AllChunks() []domain.Chunk { return e.store.All() }

// HasDocuments reports whether anything has been ingested.
func (e *Engine) HasDocuments() bool { return !e.store.Empty() }

// CountChunks returns the number of stored chunks.
func (e *Engine) CountChunks() int { return e.store.Count() }

// Clear empties the store, resets chunk numbering to zero, and drops
// the provenance cache.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Clear()
	e.lastSources = nil
}

func uniqueSources(scored []domain.ScoredChunk) []string {
	if len(scored) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(scored))
	var sources []string
	for _, sc := range scored {
		if _, ok := seen[sc.Chunk.Source]; ok {
			continue
		}
		seen[sc.Chunk.Source] = struct{}{}
		sources = append(sources, sc.Chunk.Source)
	}
	return sources
}
