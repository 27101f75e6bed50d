package feedback

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening ledger: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading ledger: %v", err)
	}
	return rows
}

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	ledger := NewLedger(path)

	if err := ledger.Append(Record{DocumentName: "paper.pdf", AutomaticCode: "ML", FinalCode: "DL"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	want := []string{"paper.pdf", "ML", "DL"}
	for i, col := range want {
		if rows[0][i] != col {
			t.Errorf("row[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
}

func TestAppendKeepsPriorRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	ledger := NewLedger(path)

	if err := ledger.Append(Record{DocumentName: "a.pdf", AutomaticCode: "ML", FinalCode: "ML"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := ledger.Append(Record{DocumentName: "b.pdf", AutomaticCode: "DL", FinalCode: "RL"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][0] != "a.pdf" || rows[1][0] != "b.pdf" {
		t.Errorf("rows out of append order: %v", rows)
	}
}

func TestAppendUsesBaseName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	ledger := NewLedger(path)

	if err := ledger.Append(Record{DocumentName: "/tmp/docs/deep/paper.pdf", AutomaticCode: "ML", FinalCode: "ML"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows := readRows(t, path)
	if rows[0][0] != "paper.pdf" {
		t.Errorf("document name = %q, want base name paper.pdf", rows[0][0])
	}
}

func TestAppendEscapesDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	ledger := NewLedger(path)

	if err := ledger.Append(Record{DocumentName: "a,b.pdf", AutomaticCode: "ML", FinalCode: "ML"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows := readRows(t, path)
	if rows[0][0] != "a,b.pdf" {
		t.Errorf("document name = %q, want a,b.pdf round-tripped", rows[0][0])
	}
	if len(rows[0]) != 3 {
		t.Errorf("row has %d fields, want 3", len(rows[0]))
	}
}

func TestConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	ledger := NewLedger(path)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := ledger.Append(Record{
				DocumentName:  fmt.Sprintf("doc-%d.pdf", i),
				AutomaticCode: "ML",
				FinalCode:     "ML",
			})
			if err != nil {
				t.Errorf("Append: %v", err)
			}
		}(i)
	}
	wg.Wait()

	rows := readRows(t, path)
	if len(rows) != n {
		t.Fatalf("got %d rows, want %d", len(rows), n)
	}
	for _, row := range rows {
		if len(row) != 3 {
			t.Fatalf("interleaved row: %v", row)
		}
	}
}
