package ml

import (
	"reflect"
	"testing"
)

func fittedVectorizer(t *testing.T) *Vectorizer {
	t.Helper()
	v := NewVectorizer(3)
	v.Fit([]string{"john", "jan", "johann"})
	return v
}

func TestVectorizerFitVocabulary(t *testing.T) {
	v := fittedVectorizer(t)

	want := []string{"_ja", "_jo", "an_", "ann", "han", "hn_", "jan", "joh", "nn_", "oha", "ohn"}
	if v.VocabSize() != len(want) {
		t.Fatalf("vocabulary size = %d, want %d", v.VocabSize(), len(want))
	}
	// Indices are dense and assigned in sorted n-gram order.
	for i, gram := range want {
		idx, ok := v.vocab[gram]
		if !ok {
			t.Fatalf("vocabulary missing n-gram %q", gram)
		}
		if idx != i {
			t.Fatalf("vocab[%q] = %d, want %d", gram, idx, i)
		}
	}
}

func TestVectorizerTransform(t *testing.T) {
	v := fittedVectorizer(t)

	vec := v.Transform("john")
	if len(vec) != v.VocabSize() {
		t.Fatalf("vector length = %d, want %d", len(vec), v.VocabSize())
	}

	counted := map[string]int{"_jo": 1, "joh": 1, "ohn": 1, "hn_": 1}
	for gram, idx := range v.vocab {
		if vec[idx] != counted[gram] {
			t.Errorf("count for %q = %d, want %d", gram, vec[idx], counted[gram])
		}
	}
}

func TestVectorizerTransformDeterministic(t *testing.T) {
	v := fittedVectorizer(t)
	first := v.Transform("johann")
	second := v.Transform("johann")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("transform not deterministic: %v vs %v", first, second)
	}
}

func TestVectorizerOutOfVocabulary(t *testing.T) {
	v := fittedVectorizer(t)
	vec := v.Transform("xyz")
	for i, c := range vec {
		if c != 0 {
			t.Fatalf("expected zero vector for out-of-vocabulary name, index %d = %d", i, c)
		}
	}
}

func TestVectorizerRefitOverwrites(t *testing.T) {
	v := fittedVectorizer(t)
	v.Fit([]string{"al"})

	want := []string{"_al", "al_"}
	if v.VocabSize() != len(want) {
		t.Fatalf("vocabulary size after refit = %d, want %d", v.VocabSize(), len(want))
	}
	for _, gram := range want {
		if _, ok := v.vocab[gram]; !ok {
			t.Fatalf("vocabulary missing n-gram %q after refit", gram)
		}
	}
}

func TestVectorizerStateRoundTrip(t *testing.T) {
	v := fittedVectorizer(t)

	restored, err := vectorizerFromState(v.state())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.N() != v.N() || restored.VocabSize() != v.VocabSize() {
		t.Fatalf("round trip changed shape: n=%d size=%d", restored.N(), restored.VocabSize())
	}
	if !reflect.DeepEqual(restored.Transform("john"), v.Transform("john")) {
		t.Fatal("round trip changed transform output")
	}
}

func TestVectorizerFromStateRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		st   vectorizerState
	}{
		{"missing n", vectorizerState{N: 0}},
		{"duplicate index", vectorizerState{N: 3, Vocab: []vocabPair{{"abc", 0}, {"abd", 0}}}},
		{"index out of range", vectorizerState{N: 3, Vocab: []vocabPair{{"abc", 5}}}},
		{"duplicate ngram", vectorizerState{N: 3, Vocab: []vocabPair{{"abc", 0}, {"abc", 1}}}},
		{"empty ngram", vectorizerState{N: 3, Vocab: []vocabPair{{"", 0}}}},
	}
	for _, c := range cases {
		if _, err := vectorizerFromState(c.st); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}
