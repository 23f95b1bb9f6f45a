package ml

import (
	"github.com/rotisserie/eris"
)

const (
	ModelDecisionTree = "decision_tree"
	ModelRandomForest = "random_forest"
	ModelLinear       = "linear"
)

func LoadModel(modelType, path string) (Regressor, error) {
	var model Regressor
	switch modelType {
	case ModelDecisionTree:
		model = &DecisionTree{}
	case ModelRandomForest:
		model = &RandomForest{}
	case ModelLinear:
		model = &LinearModel{}
	default:
		return nil, eris.Errorf("ml: unsupported model type %q", modelType)
	}
	if err := model.Load(path); err != nil {
		return nil, err
	}
	return model, nil
}
