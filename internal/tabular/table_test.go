package tabular

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMapping(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write mapping: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeMapping(t, "roster.csv", "Team,Photo\r\nLions,cat.jpg\n\nTigers,dog.jpg\n")

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table.Header) != 2 || table.Header[0] != "Team" {
		t.Fatalf("unexpected header: %#v", table.Header)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	// Blank line 3 is dropped but line numbers keep file positions.
	if table.Rows[0].Line != 2 || table.Rows[1].Line != 4 {
		t.Fatalf("unexpected line numbers: %d, %d", table.Rows[0].Line, table.Rows[1].Line)
	}
	if table.Rows[1].Fields[1] != "dog.jpg" {
		t.Fatalf("unexpected row fields: %#v", table.Rows[1].Fields)
	}
}

func TestLoadCSVQuotedFolder(t *testing.T) {
	path := writeMapping(t, "roster.csv", "Team,Photo\n\"Lions, Juniors\",cat.jpg\n")

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Rows[0].Fields[0] != "Lions, Juniors" {
		t.Fatalf("quoted field mangled: %#v", table.Rows[0].Fields)
	}
}

func TestLoadEmptyFileFails(t *testing.T) {
	path := writeMapping(t, "empty.csv", "")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty mapping file")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing mapping file")
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeMapping(t, "roster.csv", "Team,Photo\n")

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(table.Rows))
	}
}
