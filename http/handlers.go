package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"namevibe/corpus"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePredict returns ranked distributions for both genders.
// GET /api/predict?name=<name>
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	prediction, err := s.predictor.Predict(name)
	if err != nil {
		s.logger.Error("prediction failed", zap.String("name", name), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "prediction failed"})
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}

// modelInfo is the per-gender metadata returned by /api/models.
type modelInfo struct {
	Gender    corpus.Gender `json:"gender"`
	Classes   []string      `json:"classes"`
	VocabSize int           `json:"vocabSize"`
	NGram     int           `json:"ngram"`
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	models := s.predictor.Models()
	infos := make([]modelInfo, 0, len(models))
	for _, gender := range corpus.Genders() {
		model, ok := models[gender]
		if !ok {
			continue
		}
		infos = append(infos, modelInfo{
			Gender:    gender,
			Classes:   model.Classes(),
			VocabSize: model.VocabSize(),
			NGram:     model.N(),
		})
	}
	writeJSON(w, http.StatusOK, infos)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
