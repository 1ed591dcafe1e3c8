package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"recall/internal/chunker"
	"recall/internal/config"
	"recall/internal/engine"
	"recall/internal/guard"
	"recall/internal/loader"
	"recall/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/recall/config.yaml if not provided)")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: recall [--config=config.yaml] file1.pdf [file2.txt ...]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}

	window, err := chunker.NewWindow(cfg.Chunking.ChunkSize, cfg.Chunking.Overlap)
	if err != nil {
		log.Fatal("invalid chunking config", "err", err)
	}
	eng := engine.New(window)

	docs, err := loader.Load(inputs)
	if err != nil {
		log.Fatal("failed to load documents", "err", err)
	}
	for _, doc := range docs {
		added := eng.AddDocument(doc.Text, doc.Source)
		if added == 0 {
			log.Warn("document had no usable text", "source", doc.Source)
			continue
		}
		log.Info("indexed document", "source", doc.Source, "chunks", added)
	}
	if !eng.HasDocuments() {
		log.Fatal("no usable text in any document")
	}
	log.Info("ready", "documents", len(docs), "chunks", eng.CountChunks())

	m := tui.New(eng, guard.New(cfg.Guard.MaxQueryLength), cfg.Retrieval.TopK)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal("tui failed", "err", err)
	}
}
