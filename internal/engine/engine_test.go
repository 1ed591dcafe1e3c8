package engine

import (
	"reflect"
	"strings"
	"testing"

	"recall/internal/chunker"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	w, err := chunker.NewWindow(chunker.DefaultChunkSize, chunker.DefaultOverlap)
	if err != nil {
		t.Fatal(err)
	}
	return New(w)
}

func TestAddDocument_BlankTextIsNoOp(t *testing.T) {
	e := newTestEngine(t)
	for _, text := range []string{"", "   ", "\r\n\t"} {
		if got := e.AddDocument(text, "blank.pdf"); got != 0 {
			t.Fatalf("AddDocument(%q) added %d chunks, expected 0", text, got)
		}
	}
	if e.HasDocuments() {
		t.Fatal("engine should hold no documents")
	}
}

func TestAddDocument_IndicesIncreaseAcrossDocuments(t *testing.T) {
	e := newTestEngine(t)
	e.AddDocument(strings.Repeat("alpha ", 200), "a.pdf")
	e.AddDocument(strings.Repeat("omega ", 200), "b.pdf")

	all := e.AllChunks()
	if len(all) < 3 {
		t.Fatalf("expected chunks from both documents, got %d", len(all))
	}
	for i, ch := range all {
		if ch.Index != i {
			t.Fatalf("chunk %d has index %d; indices must be contiguous", i, ch.Index)
		}
	}
}

func TestRetrieve_RanksByOverlap(t *testing.T) {
	e := newTestEngine(t)
	e.AddDocument("gradient descent updates weights using the learning rate", "optim.pdf")
	e.AddDocument("convolution layers extract image features", "cnn.pdf")
	e.AddDocument("the learning rate controls gradient step size", "optim.pdf")

	res := e.Retrieve("what is the learning rate in gradient descent", 3)
	if len(res.Chunks) == 0 {
		t.Fatal("expected matches")
	}
	for _, sc := range res.Chunks {
		if sc.Score <= 0 || sc.Score > 1 {
			t.Fatalf("score out of (0,1]: %f", sc.Score)
		}
		if strings.Contains(sc.Chunk.Text, "convolution") {
			t.Fatal("chunk with no query overlap must be discarded")
		}
	}
	for i := 1; i < len(res.Chunks); i++ {
		if res.Chunks[i].Score > res.Chunks[i-1].Score {
			t.Fatal("results not sorted by score descending")
		}
	}
}

func TestRetrieve_TopNLimit(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 6; i++ {
		e.AddDocument("quantum entanglement basics", "q.pdf")
	}
	if got := len(e.Retrieve("quantum entanglement", 2).Chunks); got != 2 {
		t.Fatalf("expected 2 results, got %d", got)
	}
	// n <= 0 falls back to the default.
	if got := len(e.Retrieve("quantum entanglement", 0).Chunks); got != DefaultTopK {
		t.Fatalf("expected %d results for n=0, got %d", DefaultTopK, got)
	}
}

func TestRetrieve_EqualScoresBreakTiesByIndex(t *testing.T) {
	// The tie-break between equal scores is deliberately pinned to
	// ascending chunk index (insertion order).
	e := newTestEngine(t)
	e.AddDocument("shared token here", "first.pdf")
	e.AddDocument("shared token here", "second.pdf")

	res := e.Retrieve("shared token", 2)
	if len(res.Chunks) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res.Chunks))
	}
	if res.Chunks[0].Score != res.Chunks[1].Score {
		t.Fatal("test expects a tie")
	}
	if res.Chunks[0].Chunk.Index >= res.Chunks[1].Chunk.Index {
		t.Fatal("ties must order by ascending chunk index")
	}
}

func TestRetrieve_Deterministic(t *testing.T) {
	e := newTestEngine(t)
	e.AddDocument("entropy measures disorder in thermodynamic systems", "thermo.pdf")
	e.AddDocument("enthalpy and entropy drive reaction spontaneity", "chem.pdf")

	first := e.Retrieve("entropy in systems", 3)
	second := e.Retrieve("entropy in systems", 3)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical query over identical store differed:\n%+v\n%+v", first, second)
	}
}

func TestRetrieve_EmptyQueryAndEmptyStore(t *testing.T) {
	e := newTestEngine(t)
	if res := e.Retrieve("anything", 3); len(res.Chunks) != 0 {
		t.Fatal("empty store must yield empty result")
	}
	e.AddDocument("some indexed content here", "a.pdf")
	// "a", "of" tokenize to nothing.
	if res := e.Retrieve("a of", 3); len(res.Chunks) != 0 {
		t.Fatal("tokenless query must yield empty result")
	}
}

func TestResult_CarriesSources(t *testing.T) {
	e := newTestEngine(t)
	e.AddDocument("photosynthesis converts sunlight into chemical energy", "bio.pdf")
	e.AddDocument("mitochondria produce cellular energy", "bio.pdf")
	e.AddDocument("tectonic plates shift continental positions", "geo.pdf")

	res := e.Retrieve("cellular energy photosynthesis", 5)
	if !reflect.DeepEqual(res.Sources, []string{"bio.pdf"}) {
		t.Fatalf("expected sources [bio.pdf] only, got %v", res.Sources)
	}
}

func TestResult_TextsFollowRankOrder(t *testing.T) {
	e := newTestEngine(t)
	e.AddDocument("osmosis moves water across membranes", "bio.pdf")
	e.AddDocument("diffusion spreads particles evenly", "bio.pdf")

	res := e.Retrieve("water osmosis membranes", 2)
	texts := res.Texts()
	if len(texts) != len(res.Chunks) {
		t.Fatalf("expected %d texts, got %d", len(res.Chunks), len(texts))
	}
	for i, sc := range res.Chunks {
		if texts[i] != sc.Chunk.Text {
			t.Fatalf("text %d out of rank order", i)
		}
	}
}

func TestSources_ReflectsLastRetrieve(t *testing.T) {
	e := newTestEngine(t)
	if got := e.Sources(); len(got) != 0 {
		t.Fatalf("Sources before any retrieve returned %v", got)
	}

	e.AddDocument("rust prevention in steel structures", "steel.pdf")
	e.Retrieve("steel rust prevention", 3)
	if got := e.Sources(); !reflect.DeepEqual(got, []string{"steel.pdf"}) {
		t.Fatalf("expected [steel.pdf], got %v", got)
	}

	// A retrieve that matches nothing overwrites the cache.
	e.Retrieve("unrelated nonsense zyxwv", 3)
	if got := e.Sources(); len(got) != 0 {
		t.Fatalf("Sources after empty retrieve returned %v", got)
	}
}

func TestSources_UniqueFirstSeenOrder(t *testing.T) {
	e := newTestEngine(t)
	e.AddDocument("kernel methods map data into feature spaces", "svm.pdf")
	e.AddDocument("kernel tricks avoid explicit feature computation", "svm.pdf")
	e.AddDocument("feature selection reduces data dimensionality", "prep.pdf")

	res := e.Retrieve("kernel feature data", 5)
	if len(res.Sources) != 2 {
		t.Fatalf("expected 2 unique sources, got %v", res.Sources)
	}
	if res.Sources[0] != "svm.pdf" {
		t.Fatalf("sources must keep first-seen rank order, got %v", res.Sources)
	}
}

func TestClear_ResetsEverything(t *testing.T) {
	e := newTestEngine(t)
	e.AddDocument("content to forget entirely", "old.pdf")
	e.Retrieve("content forget", 3)

	e.Clear()
	if e.HasDocuments() {
		t.Fatal("HasDocuments must be false after Clear")
	}
	if e.CountChunks() != 0 {
		t.Fatalf("expected 0 chunks, got %d", e.CountChunks())
	}
	if got := e.Sources(); len(got) != 0 {
		t.Fatalf("provenance cache must be dropped, got %v", got)
	}

	// Numbering restarts.
	e.AddDocument("fresh start content", "new.pdf")
	if all := e.AllChunks(); len(all) == 0 || all[0].Index != 0 {
		t.Fatalf("expected numbering to restart at 0, got %+v", all)
	}
}

func TestCountChunks(t *testing.T) {
	e := newTestEngine(t)
	added := e.AddDocument(strings.Repeat("counting words again ", 100), "c.pdf")
	if added == 0 {
		t.Fatal("expected chunks added")
	}
	if e.CountChunks() != added {
		t.Fatalf("CountChunks %d != added %d", e.CountChunks(), added)
	}
}
