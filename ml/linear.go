package ml

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// LinearModel predicts intercept + coefficients · features.
type LinearModel struct {
	Intercept    float64
	Coefficients FeatureVector
	loaded       bool
}

type linearArtifact struct {
	Features     []string  `json:"features"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

func (lm *LinearModel) Predict(features FeatureVector) (float64, error) {
	if !lm.loaded {
		return 0, eris.New("ml: model not loaded")
	}
	sum := lm.Intercept
	for i, coef := range lm.Coefficients {
		sum += coef * features[i]
	}
	return sum, nil
}

func (lm *LinearModel) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrap(err, "ml: read linear model")
	}
	var artifact linearArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return eris.Wrap(err, "ml: decode linear model")
	}
	if err := checkFeatureOrder(artifact.Features); err != nil {
		return err
	}
	if len(artifact.Coefficients) != NumFeatures {
		return eris.Errorf("ml: linear model has %d coefficients, want %d", len(artifact.Coefficients), NumFeatures)
	}
	lm.Intercept = artifact.Intercept
	copy(lm.Coefficients[:], artifact.Coefficients)
	lm.loaded = true
	return nil
}
