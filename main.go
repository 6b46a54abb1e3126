package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"namevibe/corpus"
	"namevibe/db"
	nvhttp "namevibe/http"
	"namevibe/logging"
	"namevibe/ml"
)

// Config is the application configuration loaded from config.yaml.
type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Models struct {
		Dir   string  `yaml:"dir"`
		NGram int     `yaml:"ngram"`
		Alpha float64 `yaml:"alpha"`
	} `yaml:"models"`
	Corpus corpus.Selection `yaml:"corpus"`
	Http   struct {
		Port int `yaml:"port"`
	} `yaml:"http"`
	Log logging.Config `yaml:"log"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "train":
		runTrain(mustConfig())
	case "predict":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "predict requires a name argument")
			os.Exit(1)
		}
		runPredict(mustConfig(), os.Args[2])
	case "import":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "import requires a file argument")
			os.Exit(1)
		}
		runImport(mustConfig(), os.Args[2])
	case "serve":
		runServe(mustConfig())
	case "help":
		usage()
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("namevibe - infers the language vibe of a personal name")
	fmt.Println()
	fmt.Println("Usage: namevibe SUBCOMMAND [ARGS]")
	fmt.Println("----------------------------------")
	fmt.Println("Subcommands:")
	fmt.Println("    train:              train both gender models from the corpus")
	fmt.Println("    predict <name>:     print ranked language probabilities for a name")
	fmt.Println("    import <file>:      import a TSV corpus (name<TAB>language<TAB>gender)")
	fmt.Println("    serve:              serve predictions over HTTP")
	fmt.Println("    help:               show this message")
}

func mustConfig() *Config {
	config, err := loadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return config
}

// loadConfig reads config.yaml. A missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	config := &Config{}
	config.Database.Path = "./data/names.db"
	config.Models.Dir = "./models"
	config.Models.NGram = ml.DefaultNGram
	config.Models.Alpha = 1
	config.Corpus.MinNamesPerGender = 50
	config.Http.Port = 8080
	config.Log.Level = "info"

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}

// runTrain regenerates both gender models from the corpus and writes both
// model files unconditionally.
func runTrain(config *Config) {
	if err := db.InitDB(config.Database.Path); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	loader := corpus.NewLoader(config.Corpus)
	opts := ml.Options{N: config.Models.NGram, Alpha: config.Models.Alpha}

	for _, gender := range corpus.Genders() {
		examples, err := loader.Load(gender)
		if err != nil {
			log.Fatalf("Failed to load %s corpus: %v", gender, err)
		}
		model, err := ml.Train(examples, gender, opts)
		if err != nil {
			log.Fatalf("Failed to train %s model: %v", gender, err)
		}
		path := ml.ModelPath(config.Models.Dir, gender)
		if err := model.Save(path); err != nil {
			log.Fatalf("Failed to save %s model: %v", gender, err)
		}
		if err := db.LogTraining(string(gender), len(model.Classes()), len(examples), model.VocabSize()); err != nil {
			log.Printf("Failed to record training run: %v", err)
		}
		log.Printf("Trained %s model: %d examples, %d classes, %d n-grams -> %s",
			gender, len(examples), len(model.Classes()), model.VocabSize(), path)
	}
}

// runPredict loads both models and prints a ranked distribution per gender.
func runPredict(config *Config, name string) {
	predictor, err := ml.LoadPredictor(config.Models.Dir)
	if err != nil {
		log.Fatalf("Failed to load models: %v", err)
	}

	prediction, err := predictor.Predict(name)
	if err != nil {
		log.Fatalf("Prediction failed: %v", err)
	}

	for _, gender := range corpus.Genders() {
		fmt.Printf("%s:\n", gender)
		for _, score := range prediction.ByGender[gender] {
			fmt.Printf("  %s: %.3f\n", score.Language, score.Probability)
		}
	}
}

// runImport fills the corpus from a TSV file: name<TAB>language<TAB>gender.
func runImport(config *Config, path string) {
	if err := db.InitDB(config.Database.Path); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open corpus file: %v", err)
	}
	defer file.Close()

	var rows []db.NameRow
	lineNo := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			log.Fatalf("Malformed line %d: want name<TAB>language<TAB>gender", lineNo)
		}
		gender := corpus.Gender(strings.ToLower(strings.TrimSpace(fields[2])))
		if gender != corpus.Male && gender != corpus.Female {
			log.Fatalf("Unknown gender %q on line %d", fields[2], lineNo)
		}
		rows = append(rows, db.NameRow{
			Text:     strings.TrimSpace(fields[0]),
			Language: strings.ToLower(strings.TrimSpace(fields[1])),
			Gender:   string(gender),
		})
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Failed to read corpus file: %v", err)
	}

	inserted, err := db.InsertNames(rows)
	if err != nil {
		log.Fatalf("Failed to import names: %v", err)
	}
	fmt.Printf("Imported %d names (%d new)\n", len(rows), inserted)
}

// runServe exposes the predictor over HTTP until SIGINT/SIGTERM.
func runServe(config *Config) {
	logger := logging.New(config.Log)
	defer logger.Sync()

	predictor, err := ml.LoadPredictor(config.Models.Dir)
	if err != nil {
		logger.Fatal("failed to load models", zap.Error(err))
	}

	serverConfig := nvhttp.DefaultServerConfig()
	serverConfig.Port = config.Http.Port
	server := nvhttp.NewServer(serverConfig, predictor, logger)

	stop := make(chan struct{})
	go func() {
		if err := server.WatchModels(config.Models.Dir, stop); err != nil {
			logger.Warn("model watcher unavailable", zap.Error(err))
		}
	}()

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	close(stop)

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("exiting")
}
