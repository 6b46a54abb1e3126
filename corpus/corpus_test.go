package corpus

import (
	"testing"

	"namevibe/db"
)

func testRows() []db.NameRow {
	return []db.NameRow{
		{Text: "john", Language: "en", Gender: "male"},
		{Text: "james", Language: "en", Gender: "male"},
		{Text: "william", Language: "en", Gender: "male"},
		{Text: "jan", Language: "nl", Gender: "male"},
		{Text: "pieter", Language: "nl", Gender: "male"},
		{Text: "keanu", Language: "haw", Gender: "male"},
	}
}

func TestSelectKeepsEligibleLanguages(t *testing.T) {
	loader := NewLoader(Selection{MinNamesPerGender: 2})
	examples := loader.Select(testRows(), Male)

	if len(examples) != 5 {
		t.Fatalf("expected 5 examples, got %d", len(examples))
	}
	for _, example := range examples {
		if example.Language == "haw" {
			t.Fatal("language below the size threshold was kept")
		}
		if example.Gender != Male {
			t.Fatalf("example gender = %s, want male", example.Gender)
		}
	}
}

func TestSelectExcludedLocales(t *testing.T) {
	loader := NewLoader(Selection{ExcludedLocales: []string{"en"}, MinNamesPerGender: 1})
	examples := loader.Select(testRows(), Male)

	for _, example := range examples {
		if example.Language == "en" {
			t.Fatal("excluded locale was kept")
		}
	}
	if len(examples) != 3 {
		t.Fatalf("expected 3 examples, got %d", len(examples))
	}
}

func TestSelectNoThreshold(t *testing.T) {
	loader := NewLoader(Selection{})
	examples := loader.Select(testRows(), Male)
	if len(examples) != len(testRows()) {
		t.Fatalf("expected all %d examples, got %d", len(testRows()), len(examples))
	}
}

func TestGendersStableOrder(t *testing.T) {
	genders := Genders()
	if len(genders) != 2 || genders[0] != Male || genders[1] != Female {
		t.Fatalf("unexpected gender order: %v", genders)
	}
}
