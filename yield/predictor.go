package yield

import (
	"context"
	"errors"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"cropyield/ml"
)

// ErrNonFinite is returned when the model produces NaN or an infinity.
var ErrNonFinite = errors.New("model returned a non-finite prediction")

// Predictor encodes an Input, builds the feature vector and asks the model
// for a yield in hg/ha.
type Predictor struct {
	model    ml.Regressor
	encoders ml.Encoders
	memo     *lru.Cache[ml.FeatureVector, float64]
}

// NewPredictor wires a model to its encoders. cacheSize > 0 enables a memo of
// recent feature vectors; the model is read-only so memoized values never go
// stale.
func NewPredictor(model ml.Regressor, encoders ml.Encoders, cacheSize int) (*Predictor, error) {
	if model == nil {
		return nil, eris.New("yield: model is required")
	}
	if encoders.Area() == nil || encoders.Crop() == nil {
		return nil, eris.New("yield: area and crop encoders are required")
	}
	p := &Predictor{model: model, encoders: encoders}
	if cacheSize > 0 {
		memo, err := lru.New[ml.FeatureVector, float64](cacheSize)
		if err != nil {
			return nil, eris.Wrap(err, "yield: create prediction memo")
		}
		p.memo = memo
	}
	return p, nil
}

func (p *Predictor) Encoders() ml.Encoders {
	return p.encoders
}

// Features encodes the categorical fields and lays the input out in training
// column order.
func (p *Predictor) Features(in Input) (ml.FeatureVector, error) {
	var x ml.FeatureVector
	area, err := p.encoders.Area().Transform(in.Area)
	if err != nil {
		return x, eris.Wrap(err, "yield: area")
	}
	crop, err := p.encoders.Crop().Transform(in.Crop)
	if err != nil {
		return x, eris.Wrap(err, "yield: crop")
	}
	x[ml.FeatureArea] = float64(area)
	x[ml.FeatureCrop] = float64(crop)
	x[ml.FeatureYear] = float64(in.Year)
	x[ml.FeatureRainfall] = in.Rainfall
	x[ml.FeatureTemperature] = in.Temperature
	x[ml.FeaturePesticide] = in.Pesticide
	return x, nil
}

func (p *Predictor) Predict(ctx context.Context, in Input) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	x, err := p.Features(in)
	if err != nil {
		return 0, err
	}
	if p.memo != nil {
		if v, ok := p.memo.Get(x); ok {
			return v, nil
		}
	}
	v, err := p.model.Predict(x)
	if err != nil {
		return 0, eris.Wrap(err, "yield: predict")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, eris.Wrapf(ErrNonFinite, "yield: features %v", x)
	}
	if p.memo != nil {
		p.memo.Add(x, v)
	}
	zap.L().Debug("yield predicted",
		zap.String("area", in.Area),
		zap.String("crop", in.Crop),
		zap.Int("year", in.Year),
		zap.Float64("prediction", v),
	)
	return v, nil
}
