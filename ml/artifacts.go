package ml

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

type ArtifactConfig struct {
	ModelType    string
	ModelPath    string
	EncodersPath string
}

// Artifacts is the model and encoder pair loaded once at startup.
type Artifacts struct {
	Model    Regressor
	Encoders Encoders
}

// LoadArtifacts loads both artifacts. Any error means the service cannot
// start.
func LoadArtifacts(cfg ArtifactConfig) (*Artifacts, error) {
	model, err := LoadModel(cfg.ModelType, cfg.ModelPath)
	if err != nil {
		return nil, eris.Wrapf(err, "ml: load model %s", cfg.ModelPath)
	}
	encoders, err := LoadEncoders(cfg.EncodersPath)
	if err != nil {
		return nil, eris.Wrapf(err, "ml: load encoders %s", cfg.EncodersPath)
	}
	zap.L().Info("artifacts loaded",
		zap.String("model_type", cfg.ModelType),
		zap.String("model_path", cfg.ModelPath),
		zap.Int("areas", len(encoders.Area().Classes())),
		zap.Int("crops", len(encoders.Crop().Classes())),
	)
	return &Artifacts{Model: model, Encoders: encoders}, nil
}
