package ml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const treeJSON = `{
  "features": ["Area", "Item", "Year", "average_rain_fall_mm_per_year", "avg_temp", "pesticides_tonnes"],
  "nodes": [
    {"feature_idx": 3, "threshold": 1000, "left_child": 1, "right_child": 2},
    {"feature_idx": -1, "left_child": -1, "right_child": -1, "value": 15000, "is_leaf": true},
    {"feature_idx": 4, "threshold": 30, "left_child": 3, "right_child": 4},
    {"feature_idx": -1, "left_child": -1, "right_child": -1, "value": 45000, "is_leaf": true},
    {"feature_idx": -1, "left_child": -1, "right_child": -1, "value": 30000, "is_leaf": true}
  ]
}`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDecisionTreePredict(t *testing.T) {
	path := writeFile(t, "tree.json", treeJSON)

	model := &DecisionTree{}
	require.NoError(t, model.Load(path))
	assert.Equal(t, 5, model.Len())

	tests := []struct {
		name string
		x    FeatureVector
		want float64
	}{
		{"dry", FeatureVector{FeatureRainfall: 800, FeatureTemperature: 25}, 15000},
		{"threshold goes left", FeatureVector{FeatureRainfall: 1000, FeatureTemperature: 40}, 15000},
		{"wet and mild", FeatureVector{FeatureRainfall: 1200, FeatureTemperature: 25}, 45000},
		{"wet and hot", FeatureVector{FeatureRainfall: 1200, FeatureTemperature: 35}, 30000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.Predict(tt.x)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecisionTreeUnloaded(t *testing.T) {
	_, err := (&DecisionTree{}).Predict(FeatureVector{})
	assert.Error(t, err)
}

func TestDecisionTreeRejectsCorruptArtifacts(t *testing.T) {
	tests := map[string]string{
		"not json":       `{"nodes": [`,
		"no nodes":       `{"nodes": []}`,
		"bad feature":    `{"nodes": [{"feature_idx": 9, "left_child": 1, "right_child": 2}, {"is_leaf": true}, {"is_leaf": true}]}`,
		"backward child": `{"nodes": [{"feature_idx": 0, "left_child": 0, "right_child": 1}, {"is_leaf": true}]}`,
		"child past end": `{"nodes": [{"feature_idx": 0, "left_child": 1, "right_child": 5}, {"is_leaf": true}]}`,
		"feature order":  `{"features": ["Item", "Area", "Year", "average_rain_fall_mm_per_year", "avg_temp", "pesticides_tonnes"], "nodes": [{"is_leaf": true}]}`,
		"feature count":  `{"features": ["Area"], "nodes": [{"is_leaf": true}]}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "tree.json", body)
			assert.Error(t, (&DecisionTree{}).Load(path))
		})
	}
}

func TestDecisionTreeMissingFile(t *testing.T) {
	err := (&DecisionTree{}).Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read decision tree")
}

func TestNewDecisionTreeCopiesNodes(t *testing.T) {
	nodes := []TreeNode{{IsLeaf: true, Value: 7}}
	tree, err := NewDecisionTree(nodes)
	require.NoError(t, err)
	nodes[0].Value = 8

	got, err := tree.Predict(FeatureVector{})
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)
}
