package ml

import (
	"fmt"
	"math"
)

// NaiveBayes is a multinomial Naive Bayes classifier over n-gram count
// vectors with additive smoothing. It has exactly two states: untrained and
// trained. Fit is the only transition and a fresh Fit replaces all
// parameters, it never accumulates.
type NaiveBayes struct {
	alpha          float64
	classes        []string // first-seen order
	classCount     map[string]int
	classLogPrior  map[string]float64
	featureCount   map[string][]float64
	featureLogProb map[string][]float64
	vocabSize      int
	trained        bool
}

// NewNaiveBayes creates an untrained classifier. Non-positive alpha falls
// back to 1 (Laplace smoothing).
func NewNaiveBayes(alpha float64) *NaiveBayes {
	if alpha <= 0 {
		alpha = 1
	}
	return &NaiveBayes{alpha: alpha}
}

// Fit learns per-class priors and feature log-probabilities from vectorized
// training data. Every vector must have the same length. An empty training
// set, mismatched X/y lengths or ragged vectors violate the contract.
func (nb *NaiveBayes) Fit(X [][]int, y []string) error {
	if len(X) == 0 {
		return fmt.Errorf("%w: empty training set", ErrContract)
	}
	if len(X) != len(y) {
		return fmt.Errorf("%w: %d vectors for %d labels", ErrContract, len(X), len(y))
	}
	vocabSize := len(X[0])
	for i, vec := range X {
		if len(vec) != vocabSize {
			return fmt.Errorf("%w: vector %d has length %d, want %d", ErrContract, i, len(vec), vocabSize)
		}
	}

	classes := make([]string, 0)
	classCount := make(map[string]int)
	featureCount := make(map[string][]float64)
	for i, label := range y {
		if _, ok := classCount[label]; !ok {
			classes = append(classes, label)
			featureCount[label] = make([]float64, vocabSize)
		}
		classCount[label]++
		counts := featureCount[label]
		for j, c := range X[i] {
			counts[j] += float64(c)
		}
	}

	n := len(X)
	k := len(classes)
	classLogPrior := make(map[string]float64, k)
	featureLogProb := make(map[string][]float64, k)
	for _, class := range classes {
		classLogPrior[class] = math.Log(float64(classCount[class]+1) / float64(n+k))

		counts := featureCount[class]
		var total float64
		for _, c := range counts {
			total += c
		}
		denom := total + nb.alpha*float64(vocabSize)
		logProb := make([]float64, vocabSize)
		for j, c := range counts {
			logProb[j] = math.Log((c + nb.alpha) / denom)
		}
		featureLogProb[class] = logProb
	}

	nb.classes = classes
	nb.classCount = classCount
	nb.classLogPrior = classLogPrior
	nb.featureCount = featureCount
	nb.featureLogProb = featureLogProb
	nb.vocabSize = vocabSize
	nb.trained = true
	return nil
}

// PredictProba returns the posterior probability for every trained class.
// Probabilities are normalized with log-sum-exp, so they are strictly
// positive and sum to 1 regardless of how extreme the log-likelihoods are.
func (nb *NaiveBayes) PredictProba(vec []int) (map[string]float64, error) {
	if !nb.trained {
		return nil, ErrNotTrained
	}
	if len(vec) != nb.vocabSize {
		return nil, fmt.Errorf("%w: vector length %d, want %d", ErrContract, len(vec), nb.vocabSize)
	}

	logJoint := make([]float64, len(nb.classes))
	for i, class := range nb.classes {
		sum := nb.classLogPrior[class]
		logProb := nb.featureLogProb[class]
		for j, count := range vec {
			if count != 0 {
				sum += float64(count) * logProb[j]
			}
		}
		logJoint[i] = sum
	}

	maxLog := logJoint[0]
	for _, lj := range logJoint[1:] {
		if lj > maxLog {
			maxLog = lj
		}
	}

	probs := make(map[string]float64, len(nb.classes))
	var total float64
	for i, class := range nb.classes {
		p := math.Exp(logJoint[i] - maxLog)
		probs[class] = p
		total += p
	}
	for class := range probs {
		probs[class] /= total
	}
	return probs, nil
}

// Classes returns the trained classes in first-seen order.
func (nb *NaiveBayes) Classes() []string {
	return append([]string(nil), nb.classes...)
}

// Alpha returns the additive smoothing constant.
func (nb *NaiveBayes) Alpha() float64 { return nb.alpha }

// nbState is the persisted form of a trained classifier.
type nbState struct {
	Classes        []string             `json:"classes"`
	ClassCount     map[string]int       `json:"classCount"`
	ClassLogPrior  map[string]float64   `json:"classLogPrior"`
	FeatureCount   map[string][]float64 `json:"featureCount"`
	FeatureLogProb map[string][]float64 `json:"featureLogProb"`
	VocabSize      int                  `json:"vocabSize"`
	Alpha          float64              `json:"alpha"`
}

func (nb *NaiveBayes) state() nbState {
	return nbState{
		Classes:        nb.classes,
		ClassCount:     nb.classCount,
		ClassLogPrior:  nb.classLogPrior,
		FeatureCount:   nb.featureCount,
		FeatureLogProb: nb.featureLogProb,
		VocabSize:      nb.vocabSize,
		Alpha:          nb.alpha,
	}
}

func bayesFromState(st nbState) (*NaiveBayes, error) {
	if len(st.Classes) == 0 {
		return nil, fmt.Errorf("%w: no classes", ErrCorruptModel)
	}
	if st.Alpha <= 0 || math.IsNaN(st.Alpha) || math.IsInf(st.Alpha, 0) {
		return nil, fmt.Errorf("%w: invalid alpha %v", ErrCorruptModel, st.Alpha)
	}
	if st.VocabSize < 0 {
		return nil, fmt.Errorf("%w: negative vocabulary size", ErrCorruptModel)
	}

	seen := make(map[string]struct{}, len(st.Classes))
	for _, class := range st.Classes {
		if _, dup := seen[class]; dup {
			return nil, fmt.Errorf("%w: duplicate class %q", ErrCorruptModel, class)
		}
		seen[class] = struct{}{}

		count, ok := st.ClassCount[class]
		if !ok || count < 1 {
			return nil, fmt.Errorf("%w: missing or invalid classCount for %q", ErrCorruptModel, class)
		}
		prior, ok := st.ClassLogPrior[class]
		if !ok || math.IsNaN(prior) || math.IsInf(prior, 0) || prior > 0 {
			return nil, fmt.Errorf("%w: missing or non-finite classLogPrior for %q", ErrCorruptModel, class)
		}
		counts, ok := st.FeatureCount[class]
		if !ok || len(counts) != st.VocabSize {
			return nil, fmt.Errorf("%w: featureCount for %q has length %d, want %d", ErrCorruptModel, class, len(counts), st.VocabSize)
		}
		for _, c := range counts {
			if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, fmt.Errorf("%w: invalid feature count for %q", ErrCorruptModel, class)
			}
		}
		logProb, ok := st.FeatureLogProb[class]
		if !ok || len(logProb) != st.VocabSize {
			return nil, fmt.Errorf("%w: featureLogProb for %q has length %d, want %d", ErrCorruptModel, class, len(logProb), st.VocabSize)
		}
		for _, lp := range logProb {
			if math.IsNaN(lp) || math.IsInf(lp, 0) || lp > 0 {
				return nil, fmt.Errorf("%w: non-finite featureLogProb for %q", ErrCorruptModel, class)
			}
		}
	}
	if len(st.ClassCount) != len(st.Classes) || len(st.ClassLogPrior) != len(st.Classes) ||
		len(st.FeatureCount) != len(st.Classes) || len(st.FeatureLogProb) != len(st.Classes) {
		return nil, fmt.Errorf("%w: parameter maps do not match class list", ErrCorruptModel)
	}

	return &NaiveBayes{
		alpha:          st.Alpha,
		classes:        st.Classes,
		classCount:     st.ClassCount,
		classLogPrior:  st.ClassLogPrior,
		featureCount:   st.FeatureCount,
		featureLogProb: st.FeatureLogProb,
		vocabSize:      st.VocabSize,
		trained:        true,
	}, nil
}
