// Package loader reads study material from disk and hands plain text to
// the engine. Plain text and markdown are read directly; PDFs go through
// text extraction.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document is one loaded file: its text and the label the engine will
// report as provenance (the base filename).
type Document struct {
	Source string
	Text   string
}

// Load expands each argument as a glob pattern (a plain path matches
// itself) and reads every supported file. Unsupported extensions are
// skipped silently so directory globs stay convenient. It is an error
// if nothing loadable matches at all.
func Load(paths []string) ([]Document, error) {
	var docs []Document
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if !supported(m) {
				continue
			}
			text, err := ReadFile(m)
			if err != nil {
				return nil, err
			}
			docs = append(docs, Document{Source: filepath.Base(m), Text: text})
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no .txt, .md or .pdf documents found in %v", paths)
	}
	return docs, nil
}

// ReadFile returns the text content of a single supported file.
func ReadFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", path)
	}
}

func supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".pdf":
		return true
	}
	return false
}

func extractPDF(path string) (string, error) {
	f, rdr, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	r, err := rdr.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", fmt.Errorf("reading pdf text from %s: %w", path, err)
	}
	return buf.String(), nil
}
