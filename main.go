package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	qhttp "cropyield/http"
	"cropyield/logger"
	"cropyield/ml"
	"cropyield/yield"
)

type Config struct {
	Http struct {
		Port    int           `yaml:"port"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"http"`
	Log logger.Config `yaml:"log"`
	ML  struct {
		ModelType    string `yaml:"model_type"`
		ModelPath    string `yaml:"model_path"`
		EncodersPath string `yaml:"encoders_path"`
	} `yaml:"ml"`
	Predict struct {
		CacheSize int `yaml:"cache_size"`
	} `yaml:"predict"`
}

func defaultConfig() *Config {
	var config Config
	config.Http.Port = qhttp.DefaultServerConfig().Port
	config.Http.Timeout = qhttp.DefaultServerConfig().Timeout
	config.Log.Level = "info"
	config.Log.Format = "json"
	config.ML.ModelType = ml.ModelRandomForest
	config.ML.ModelPath = "crop_yield_model.json"
	config.ML.EncodersPath = "label_encoders.json"
	config.Predict.CacheSize = 256
	return &config
}

func main() {
	// Look for config in the parent too when run from a subdirectory
	configPath := "config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if _, err := os.Stat(filepath.Join("..", "config.yaml")); err == nil {
			configPath = filepath.Join("..", "config.yaml")
		}
	}

	config, err := loadConfig(configPath)
	if err != nil {
		// The logger depends on config, so this one goes to stderr directly.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.Init(config.Log)
	if err != nil {
		os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	server, err := newServer(config)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	if err := server.Stop(); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("exiting")
}

// newServer loads the artifacts and builds the form server. It never opens
// a listener, so a bad artifact stops the process before anything is served.
func newServer(config *Config) (*qhttp.Server, error) {
	artifacts, err := ml.LoadArtifacts(ml.ArtifactConfig{
		ModelType:    config.ML.ModelType,
		ModelPath:    config.ML.ModelPath,
		EncodersPath: config.ML.EncodersPath,
	})
	if err != nil {
		return nil, err
	}

	predictor, err := yield.NewPredictor(artifacts.Model, artifacts.Encoders, config.Predict.CacheSize)
	if err != nil {
		return nil, err
	}

	return qhttp.NewServer(qhttp.ServerConfig{
		Port:    config.Http.Port,
		Timeout: config.Http.Timeout,
	}, predictor), nil
}

// loadConfig decodes path over the defaults. A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "config: open")
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, eris.Wrapf(err, "config: decode %s", path)
	}
	return config, nil
}
