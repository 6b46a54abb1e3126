package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"namevibe/corpus"
	"namevibe/db"
	"namevibe/ml"
)

func main() {
	dbPath := flag.String("db", "./data/names.db", "corpus database path")
	modelsDir := flag.String("models_dir", "./models", "model output directory")
	ngram := flag.Int("ngram", ml.DefaultNGram, "n-gram order")
	alpha := flag.Float64("alpha", 1, "additive smoothing constant")
	minNames := flag.Int("min_names", 50, "minimum names per gender for a language to be kept")
	excluded := flag.String("exclude", "", "comma separated locales to exclude")
	flag.Parse()

	if err := db.InitDB(*dbPath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	selection := corpus.Selection{MinNamesPerGender: *minNames}
	if *excluded != "" {
		selection.ExcludedLocales = strings.Split(*excluded, ",")
	}
	loader := corpus.NewLoader(selection)
	opts := ml.Options{N: *ngram, Alpha: *alpha}

	for _, gender := range corpus.Genders() {
		examples, err := loader.Load(gender)
		if err != nil {
			log.Fatalf("failed to load %s corpus: %v", gender, err)
		}
		model, err := ml.Train(examples, gender, opts)
		if err != nil {
			log.Fatalf("failed to train %s model: %v", gender, err)
		}
		path := ml.ModelPath(*modelsDir, gender)
		if err := model.Save(path); err != nil {
			log.Fatalf("failed to save %s model: %v", gender, err)
		}
		fmt.Printf("model saved to %s (%d examples, %d classes, %d n-grams)\n",
			path, len(examples), len(model.Classes()), model.VocabSize())
	}
}
