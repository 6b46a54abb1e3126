package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "namevibe-db")
	if err != nil {
		os.Exit(1)
	}
	if err := InitDB(filepath.Join(dir, "test.db")); err != nil {
		os.Exit(1)
	}

	code := m.Run()

	CloseDB()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestInsertNamesIgnoresDuplicates(t *testing.T) {
	rows := []NameRow{
		{Text: "erik", Language: "sv", Gender: "male"},
		{Text: "erik", Language: "sv", Gender: "male"},
		{Text: "erika", Language: "sv", Gender: "female"},
	}
	inserted, err := InsertNames(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("inserted = %d, want 2", inserted)
	}

	// A second import of the same rows is a no-op.
	inserted, err = InsertNames(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("inserted = %d, want 0", inserted)
	}
}

func TestNamesByGenderDeterministicOrder(t *testing.T) {
	if _, err := InsertNames([]NameRow{
		{Text: "zlata", Language: "cs", Gender: "female"},
		{Text: "anna", Language: "cs", Gender: "female"},
		{Text: "aino", Language: "fi", Gender: "female"},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := NamesByGender("female")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NamesByGender("female")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("row counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("row %d differs between reads: %v vs %v", i, first[i], second[i])
		}
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].Language > first[i].Language {
			t.Fatalf("rows not ordered by language: %v", first)
		}
	}
}

func TestLogTraining(t *testing.T) {
	if err := LogTraining("male", 12, 3400, 2100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
