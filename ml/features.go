package ml

import "github.com/rotisserie/eris"

// Feature indices into a FeatureVector. The order is the column order the
// yield model was trained on and must not change without retraining.
const (
	FeatureArea = iota
	FeatureCrop
	FeatureYear
	FeatureRainfall
	FeatureTemperature
	FeaturePesticide

	NumFeatures
)

// FeatureOrder names the training columns in FeatureVector order.
var FeatureOrder = [NumFeatures]string{
	FeatureArea:        "Area",
	FeatureCrop:        "Item",
	FeatureYear:        "Year",
	FeatureRainfall:    "average_rain_fall_mm_per_year",
	FeatureTemperature: "avg_temp",
	FeaturePesticide:   "pesticides_tonnes",
}

// FeatureVector is the fixed-order numeric input of a Regressor.
type FeatureVector [NumFeatures]float64

func FeatureNames() []string {
	names := make([]string, NumFeatures)
	copy(names, FeatureOrder[:])
	return names
}

// checkFeatureOrder verifies the column list an artifact declares. An empty
// list is accepted for artifacts that predate the field.
func checkFeatureOrder(declared []string) error {
	if len(declared) == 0 {
		return nil
	}
	if len(declared) != NumFeatures {
		return eris.Errorf("ml: artifact declares %d features, want %d", len(declared), NumFeatures)
	}
	for i, name := range declared {
		if name != FeatureOrder[i] {
			return eris.Errorf("ml: feature %d is %q, want %q", i, name, FeatureOrder[i])
		}
	}
	return nil
}
