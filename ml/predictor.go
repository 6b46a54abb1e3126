package ml

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"namevibe/corpus"
)

const predictionCacheSize = 1024

// Prediction is the per-gender ranked output for one name.
type Prediction struct {
	Name       string                    `json:"name"`
	Normalized string                    `json:"normalized"`
	ByGender   map[corpus.Gender][]Score `json:"byGender"`
}

// Predictor serves predictions from both gender models. It is safe for
// concurrent use; Reload swaps the model set atomically so serve mode can
// pick up a retrain without restarting.
type Predictor struct {
	mu     sync.RWMutex
	models map[corpus.Gender]*Model
	cache  *lru.Cache[string, map[corpus.Gender][]Score]
}

// LoadPredictor loads both gender models from dir. Both files must exist.
func LoadPredictor(dir string) (*Predictor, error) {
	models, err := loadModelSet(dir)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[string, map[corpus.Gender][]Score](predictionCacheSize)
	if err != nil {
		return nil, err
	}
	return &Predictor{models: models, cache: cache}, nil
}

func loadModelSet(dir string) (map[corpus.Gender]*Model, error) {
	models := make(map[corpus.Gender]*Model, 2)
	for _, gender := range corpus.Genders() {
		model, err := LoadModel(ModelPath(dir, gender))
		if err != nil {
			return nil, err
		}
		models[gender] = model
	}
	return models, nil
}

// Predict returns ranked distributions for both genders. Results are cached
// by normalized name.
func (p *Predictor) Predict(name string) (Prediction, error) {
	normalized := Normalize(name)
	if byGender, ok := p.cache.Get(normalized); ok {
		return Prediction{Name: name, Normalized: normalized, ByGender: byGender}, nil
	}

	p.mu.RLock()
	byGender := make(map[corpus.Gender][]Score, len(p.models))
	for gender, model := range p.models {
		scores, err := model.Predict(name)
		if err != nil {
			p.mu.RUnlock()
			return Prediction{}, err
		}
		byGender[gender] = scores
	}
	p.mu.RUnlock()

	p.cache.Add(normalized, byGender)
	return Prediction{Name: name, Normalized: normalized, ByGender: byGender}, nil
}

// Reload replaces both models from dir and purges the cache. The current
// model set stays in place when loading fails.
func (p *Predictor) Reload(dir string) error {
	models, err := loadModelSet(dir)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.models = models
	p.mu.Unlock()
	p.cache.Purge()
	return nil
}

// Models returns the current per-gender models.
func (p *Predictor) Models() map[corpus.Gender]*Model {
	p.mu.RLock()
	defer p.mu.RUnlock()
	models := make(map[corpus.Gender]*Model, len(p.models))
	for gender, model := range p.models {
		models[gender] = model
	}
	return models
}
