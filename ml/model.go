package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"namevibe/corpus"
)

// Score is one language's share of a prediction.
type Score struct {
	Language    string  `json:"language"`
	Probability float64 `json:"probability"`
}

// Model is an immutable trained snapshot: a fitted vectorizer, a fitted
// classifier and the gender of the corpus slice it was trained on. The male
// and female models are two independent instances with no shared state.
type Model struct {
	vectorizer *Vectorizer
	nb         *NaiveBayes
	gender     corpus.Gender
}

// Gender returns the gender this model was trained for.
func (m *Model) Gender() corpus.Gender { return m.gender }

// Classes returns the trained language codes in first-seen order.
func (m *Model) Classes() []string { return m.nb.Classes() }

// VocabSize returns the fitted vocabulary size.
func (m *Model) VocabSize() int { return m.vectorizer.VocabSize() }

// N returns the n-gram order.
func (m *Model) N() int { return m.vectorizer.N() }

// PredictProba normalizes the raw name and returns the posterior
// distribution over the trained classes. An empty normalized name yields the
// prior distribution.
func (m *Model) PredictProba(raw string) (map[string]float64, error) {
	return m.nb.PredictProba(m.vectorizer.Transform(Normalize(raw)))
}

// Predict returns the distribution ranked by descending probability.
func (m *Model) Predict(raw string) ([]Score, error) {
	probs, err := m.PredictProba(raw)
	if err != nil {
		return nil, err
	}
	return Rank(probs), nil
}

// Rank orders a distribution by descending probability, ties broken by
// language code so output is deterministic.
func Rank(probs map[string]float64) []Score {
	scores := make([]Score, 0, len(probs))
	for language, p := range probs {
		scores = append(scores, Score{Language: language, Probability: p})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Probability != scores[j].Probability {
			return scores[i].Probability > scores[j].Probability
		}
		return scores[i].Language < scores[j].Language
	})
	return scores
}

// modelFile is the persisted model document.
type modelFile struct {
	Vectorizer vectorizerState `json:"vectorizer"`
	NB         nbState         `json:"nb"`
	Meta       modelMeta       `json:"meta"`
}

type modelMeta struct {
	Gender string `json:"gender"`
}

// ModelPath returns the per-gender model file path inside dir.
func ModelPath(dir string, gender corpus.Gender) string {
	return filepath.Join(dir, fmt.Sprintf("model_%s.json", gender))
}

// Save writes the model document, unconditionally replacing any previous
// file at path.
func (m *Model) Save(path string) error {
	doc := modelFile{
		Vectorizer: m.vectorizer.state(),
		NB:         m.nb.state(),
		Meta:       modelMeta{Gender: string(m.gender)},
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, payload, 0o600)
}

// LoadModel reads and fully validates a persisted model. A missing file
// yields ErrModelNotFound; any structural or numeric defect yields
// ErrCorruptModel rather than silently degrading predictions.
func LoadModel(path string) (*Model, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, err
	}

	var doc modelFile
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}

	vectorizer, err := vectorizerFromState(doc.Vectorizer)
	if err != nil {
		return nil, err
	}
	nb, err := bayesFromState(doc.NB)
	if err != nil {
		return nil, err
	}
	if nb.vocabSize != vectorizer.VocabSize() {
		return nil, fmt.Errorf("%w: vocabulary has %d n-grams but classifier expects %d",
			ErrCorruptModel, vectorizer.VocabSize(), nb.vocabSize)
	}

	gender := corpus.Gender(doc.Meta.Gender)
	if gender != corpus.Male && gender != corpus.Female {
		return nil, fmt.Errorf("%w: unknown gender %q", ErrCorruptModel, doc.Meta.Gender)
	}

	return &Model{vectorizer: vectorizer, nb: nb, gender: gender}, nil
}
