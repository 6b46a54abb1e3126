package ml

import (
	"fmt"

	"namevibe/corpus"
)

// Options control a training run.
type Options struct {
	N     int     // n-gram order, DefaultNGram when zero
	Alpha float64 // additive smoothing, 1 when zero
}

// Train runs the full batch pipeline over one gender's corpus slice:
// normalize every name, fit the vocabulary, vectorize every example and fit
// the classifier. The result is an immutable trained model; training again
// produces a fresh model rather than updating this one.
func Train(examples []corpus.Example, gender corpus.Gender, opts Options) (*Model, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("%w: empty training corpus for gender %q", ErrContract, gender)
	}

	n := opts.N
	if n == 0 {
		n = DefaultNGram
	}
	alpha := opts.Alpha
	if alpha == 0 {
		alpha = 1
	}

	texts := make([]string, len(examples))
	labels := make([]string, len(examples))
	for i, example := range examples {
		texts[i] = Normalize(example.Text)
		labels[i] = example.Language
	}

	vectorizer := NewVectorizer(n)
	vectorizer.Fit(texts)

	vectors := make([][]int, len(texts))
	for i, text := range texts {
		vectors[i] = vectorizer.Transform(text)
	}

	nb := NewNaiveBayes(alpha)
	if err := nb.Fit(vectors, labels); err != nil {
		return nil, err
	}

	return &Model{vectorizer: vectorizer, nb: nb, gender: gender}, nil
}
