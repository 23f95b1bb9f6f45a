package ml

// Regressor is a trained model that maps one feature vector to a scalar.
// Implementations are read-only after loading and safe for concurrent use.
type Regressor interface {
	Predict(features FeatureVector) (float64, error)
	Load(path string) error
}
