package ml

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Vectorizer maps normalized names to fixed-length n-gram count vectors over
// a vocabulary learned from a training corpus.
type Vectorizer struct {
	n     int
	vocab map[string]int
}

// NewVectorizer creates an unfitted vectorizer with the given n-gram order.
func NewVectorizer(n int) *Vectorizer {
	if n <= 0 {
		n = DefaultNGram
	}
	return &Vectorizer{n: n, vocab: make(map[string]int)}
}

// Fit collects the distinct n-grams across the corpus and assigns dense
// indices 0..V-1 in lexicographic n-gram order. Calling Fit again replaces
// the vocabulary entirely.
func (v *Vectorizer) Fit(corpus []string) {
	seen := make(map[string]struct{})
	for _, name := range corpus {
		for _, gram := range NGrams(name, v.n) {
			seen[gram] = struct{}{}
		}
	}

	grams := make([]string, 0, len(seen))
	for gram := range seen {
		grams = append(grams, gram)
	}
	sort.Strings(grams)

	v.vocab = make(map[string]int, len(grams))
	for i, gram := range grams {
		v.vocab[gram] = i
	}
}

// Transform counts the name's in-vocabulary n-grams. Out-of-vocabulary
// n-grams are dropped, so a name with no overlap yields the zero vector.
// The name must already be normalized.
func (v *Vectorizer) Transform(name string) []int {
	vec := make([]int, len(v.vocab))
	for _, gram := range NGrams(name, v.n) {
		if idx, ok := v.vocab[gram]; ok {
			vec[idx]++
		}
	}
	return vec
}

// N returns the n-gram order.
func (v *Vectorizer) N() int { return v.n }

// VocabSize returns the number of fitted n-grams.
func (v *Vectorizer) VocabSize() int { return len(v.vocab) }

// vocabPair persists one vocabulary entry as a [ngram, index] pair.
type vocabPair struct {
	NGram string
	Index int
}

func (p vocabPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{p.NGram, p.Index})
}

func (p *vocabPair) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("vocab entry must be a [ngram, index] pair, got %d elements", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &p.NGram); err != nil {
		return err
	}
	return json.Unmarshal(tuple[1], &p.Index)
}

// vectorizerState is the persisted form of a fitted vectorizer.
type vectorizerState struct {
	N     int         `json:"n"`
	Vocab []vocabPair `json:"vocab"`
}

func (v *Vectorizer) state() vectorizerState {
	pairs := make([]vocabPair, 0, len(v.vocab))
	for gram, idx := range v.vocab {
		pairs = append(pairs, vocabPair{NGram: gram, Index: idx})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Index < pairs[j].Index })
	return vectorizerState{N: v.n, Vocab: pairs}
}

func vectorizerFromState(st vectorizerState) (*Vectorizer, error) {
	if st.N < 1 {
		return nil, fmt.Errorf("%w: invalid n-gram order %d", ErrCorruptModel, st.N)
	}
	vocab := make(map[string]int, len(st.Vocab))
	seenIdx := make(map[int]struct{}, len(st.Vocab))
	for _, pair := range st.Vocab {
		if len(pair.NGram) == 0 {
			return nil, fmt.Errorf("%w: empty n-gram in vocabulary", ErrCorruptModel)
		}
		if pair.Index < 0 || pair.Index >= len(st.Vocab) {
			return nil, fmt.Errorf("%w: vocabulary index %d out of range [0,%d)", ErrCorruptModel, pair.Index, len(st.Vocab))
		}
		if _, dup := seenIdx[pair.Index]; dup {
			return nil, fmt.Errorf("%w: duplicate vocabulary index %d", ErrCorruptModel, pair.Index)
		}
		if _, dup := vocab[pair.NGram]; dup {
			return nil, fmt.Errorf("%w: duplicate n-gram %q", ErrCorruptModel, pair.NGram)
		}
		seenIdx[pair.Index] = struct{}{}
		vocab[pair.NGram] = pair.Index
	}
	return &Vectorizer{n: st.N, vocab: vocab}, nil
}
