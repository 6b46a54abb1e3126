package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"namevibe/corpus"
	"namevibe/ml"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	examples := map[corpus.Gender][]corpus.Example{
		corpus.Male: {
			{Text: "john", Language: "en", Gender: corpus.Male},
			{Text: "jan", Language: "nl", Gender: corpus.Male},
			{Text: "johann", Language: "de", Gender: corpus.Male},
		},
		corpus.Female: {
			{Text: "mary", Language: "en", Gender: corpus.Female},
			{Text: "marieke", Language: "nl", Gender: corpus.Female},
			{Text: "marlene", Language: "de", Gender: corpus.Female},
		},
	}

	dir := t.TempDir()
	for gender, genderExamples := range examples {
		model, err := ml.Train(genderExamples, gender, ml.Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := model.Save(ml.ModelPath(dir, gender)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	predictor, err := ml.LoadPredictor(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewServer(DefaultServerConfig(), predictor, zap.NewNop())
}

func TestHealthHandler(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	rr := httptest.NewRecorder()
	s.handleHealth(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestPredictHandler(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest("GET", "/api/predict?name=john", nil)
	rr := httptest.NewRecorder()
	s.handlePredict(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var prediction ml.Prediction
	if err := json.Unmarshal(rr.Body.Bytes(), &prediction); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if prediction.Normalized != "john" {
		t.Fatalf("normalized = %q, want \"john\"", prediction.Normalized)
	}
	if len(prediction.ByGender) != 2 {
		t.Fatalf("expected both genders in response, got %d", len(prediction.ByGender))
	}
	for gender, scores := range prediction.ByGender {
		var total float64
		for _, score := range scores {
			total += score.Probability
		}
		if total < 0.999 || total > 1.001 {
			t.Errorf("probabilities for %s sum to %v, want 1", gender, total)
		}
	}
}

func TestPredictHandlerMissingName(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest("GET", "/api/predict", nil)
	rr := httptest.NewRecorder()
	s.handlePredict(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestModelsHandler(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest("GET", "/api/models", nil)
	rr := httptest.NewRecorder()
	s.handleModels(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var infos []modelInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &infos); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 models, got %d", len(infos))
	}
	for _, info := range infos {
		if info.NGram != ml.DefaultNGram {
			t.Errorf("ngram for %s = %d, want %d", info.Gender, info.NGram, ml.DefaultNGram)
		}
		if info.VocabSize == 0 || len(info.Classes) == 0 {
			t.Errorf("empty metadata for %s: %+v", info.Gender, info)
		}
	}
}
