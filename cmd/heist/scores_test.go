package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-heist/internal/storage"
)

func openScores(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPrintTotalsAndRecent(t *testing.T) {
	store := openScores(t)
	runs := []storage.Run{
		{Mode: "heist", Score: 40, Deaths: 1, Ticks: 600, Extracted: true},
		{Mode: "heist", Score: 12, Deaths: 3, Ticks: 900},
		{Mode: "heist_tutorial", Score: 7, Ticks: 300, Extracted: true},
	}
	var last string
	for _, r := range runs {
		id, err := store.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
		last = id
	}

	var buf bytes.Buffer
	if err := printTotals(&buf, store); err != nil {
		t.Fatalf("printTotals() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "heist_tutorial") {
		t.Errorf("printTotals() = %q, expected a line per mode", out)
	}
	if strings.Index(out, "heist ") > strings.Index(out, "heist_tutorial") {
		t.Errorf("printTotals() = %q, expected modes in order", out)
	}

	buf.Reset()
	if err := printRecent(&buf, store, 2); err != nil {
		t.Fatalf("printRecent() error = %v", err)
	}
	out = buf.String()
	if !strings.Contains(out, last) {
		t.Errorf("printRecent() = %q, expected the newest run %s", out, last)
	}
	if n := strings.Count(out, "heist"); n != 2 {
		t.Errorf("printRecent() listed %d runs, expected 2", n)
	}

	buf.Reset()
	if err := printRun(&buf, store, last); err != nil {
		t.Fatalf("printRun() error = %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "heist_tutorial") || !strings.Contains(out, "Extracted: yes") {
		t.Errorf("printRun() = %q, expected the tutorial run", out)
	}

	if err := printRun(&buf, store, "missing"); err == nil {
		t.Error("printRun() should fail for an unknown id")
	}
}

func TestPrintTotalsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := printTotals(&buf, openScores(t)); err != nil {
		t.Fatalf("printTotals() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("printTotals() = %q, expected nothing without runs", buf.String())
	}
}
