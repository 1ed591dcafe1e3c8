package chunker

import (
	"fmt"
	"strings"

	"recall/internal/domain"
)

// Defaults tuned for lecture-slide text: windows big enough to hold a
// few slides, with enough overlap that a concept split across a boundary
// still lands whole in one chunk.
const (
	DefaultChunkSize = 800
	DefaultOverlap   = 100
)

// Window slices text into fixed-size character windows where each window
// shares its first overlap characters with the tail of the previous one.
type Window struct {
	chunkSize int
	overlap   int
}

// NewWindow validates the window geometry. overlap must be smaller than
// chunkSize or the cursor could never advance, so that configuration is
// rejected here rather than looping forever at ingest time.
func NewWindow(chunkSize, overlap int) (*Window, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("overlap must not be negative, got %d", overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("overlap (%d) must be smaller than chunk size (%d)", overlap, chunkSize)
	}
	return &Window{chunkSize: chunkSize, overlap: overlap}, nil
}

// Chunk splits normalized text into overlapping windows, labeling each
// chunk with source and numbering sequentially from next. Windows that
// trim to nothing are skipped without breaking the numbering of later
// ones. Empty text yields no chunks.
func (w *Window) Chunk(text, source string, next int) []domain.Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	var chunks []domain.Chunk
	start := 0
	for start < len(runes) {
		end := start + w.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		if t := strings.TrimSpace(string(runes[start:end])); t != "" {
			chunks = append(chunks, domain.Chunk{Text: t, Source: source, Index: next})
			next++
		}
		if end >= len(runes) {
			break
		}
		start = end - w.overlap
	}
	return chunks
}
