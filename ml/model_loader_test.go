package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadModelRandomForest(t *testing.T) {
	path := writeFile(t, "forest.json", `{
  "trees": [
    [{"is_leaf": true, "value": 10000}],
    [{"feature_idx": 2, "threshold": 2010, "left_child": 1, "right_child": 2},
     {"is_leaf": true, "value": 20000},
     {"is_leaf": true, "value": 50000}]
  ]
}`)

	model, err := LoadModel(ModelRandomForest, path)
	require.NoError(t, err)
	require.IsType(t, &RandomForest{}, model)
	assert.Equal(t, 2, model.(*RandomForest).NumTrees())

	got, err := model.Predict(FeatureVector{FeatureYear: 2005})
	require.NoError(t, err)
	assert.InDelta(t, 15000, got, 1e-9)

	got, err = model.Predict(FeatureVector{FeatureYear: 2024})
	require.NoError(t, err)
	assert.InDelta(t, 30000, got, 1e-9)
}

func TestLoadModelRandomForestRejectsBadTree(t *testing.T) {
	path := writeFile(t, "forest.json", `{"trees": [[{"is_leaf": true}], []]}`)
	_, err := LoadModel(ModelRandomForest, path)
	assert.Error(t, err)

	path = writeFile(t, "forest.json", `{"trees": []}`)
	_, err = LoadModel(ModelRandomForest, path)
	assert.Error(t, err)
}

func TestLoadModelLinear(t *testing.T) {
	path := writeFile(t, "linear.json", `{
  "features": ["Area", "Item", "Year", "average_rain_fall_mm_per_year", "avg_temp", "pesticides_tonnes"],
  "intercept": 1000,
  "coefficients": [1, 2, 3, 4, 5, 6]
}`)

	model, err := LoadModel(ModelLinear, path)
	require.NoError(t, err)

	got, err := model.Predict(FeatureVector{1, 1, 1, 1, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1021, got, 1e-9)
}

func TestLoadModelLinearWrongArity(t *testing.T) {
	path := writeFile(t, "linear.json", `{"intercept": 1, "coefficients": [1, 2]}`)
	_, err := LoadModel(ModelLinear, path)
	assert.Error(t, err)
}

func TestLoadModelUnsupportedType(t *testing.T) {
	path := writeFile(t, "tree.json", treeJSON)
	_, err := LoadModel("xgboost", path)
	assert.ErrorContains(t, err, "unsupported model type")
}

func TestFeatureNames(t *testing.T) {
	names := FeatureNames()
	assert.Equal(t, []string{"Area", "Item", "Year", "average_rain_fall_mm_per_year", "avg_temp", "pesticides_tonnes"}, names)

	names[0] = "changed"
	assert.Equal(t, "Area", FeatureOrder[FeatureArea])
}
