package ml

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"John", "john"},
		{"José", "jose"},
		{"Björn", "bjorn"},
		{"Zoë", "zoe"},
		{"Иван", "ivan"},
		{"Алексей", "aleksey"},
		{"Jean-Pierre", "jeanpierre"},
		{"Mary Ann", "maryann"},
		{"O'Brien", "obrien"},
		{"anna2", "anna"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	inputs := []string{"José", "Фёдор", "Müller", "françois", ""}
	for _, in := range inputs {
		first := Normalize(in)
		second := Normalize(in)
		if first != second {
			t.Fatalf("Normalize(%q) not deterministic: %q vs %q", in, first, second)
		}
	}
}

func TestNormalizeAlphabet(t *testing.T) {
	for _, in := range []string{"Łukasz", "Дмитрий", "Æthelred", "名前"} {
		for _, r := range Normalize(in) {
			if r < 'a' || r > 'z' {
				t.Fatalf("Normalize(%q) produced rune %q outside a..z", in, r)
			}
		}
	}
}
