package ml

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const encodersJSON = `{
  "Area": ["Albania", "India", "Kenya", "X"],
  "Crop": ["Maize", "Potatoes", "Rice, paddy", "Wheat"]
}`

func TestLabelEncoderRoundTrip(t *testing.T) {
	path := writeFile(t, "encoders.json", encodersJSON)
	encoders, err := LoadEncoders(path)
	require.NoError(t, err)

	for _, encoder := range []*LabelEncoder{encoders.Area(), encoders.Crop()} {
		for want, class := range encoder.Classes() {
			code, err := encoder.Transform(class)
			require.NoError(t, err)
			assert.Equal(t, want, code)

			back, err := encoder.Inverse(code)
			require.NoError(t, err)
			assert.Equal(t, class, back)
		}
	}
}

func TestLabelEncoderUnknownCategory(t *testing.T) {
	encoder, err := NewLabelEncoder([]string{"Maize", "Wheat"})
	require.NoError(t, err)

	_, err = encoder.Transform("Barley")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.False(t, encoder.Contains("Barley"))
	assert.True(t, encoder.Contains("Wheat"))

	_, err = encoder.Inverse(2)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	_, err = encoder.Inverse(-1)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestLabelEncoderClassesIsCopy(t *testing.T) {
	encoder, err := NewLabelEncoder([]string{"Maize", "Wheat"})
	require.NoError(t, err)

	classes := encoder.Classes()
	classes[0] = "Barley"
	assert.Equal(t, []string{"Maize", "Wheat"}, encoder.Classes())
}

func TestNewLabelEncoderRejectsBadClasses(t *testing.T) {
	_, err := NewLabelEncoder(nil)
	assert.Error(t, err)

	_, err = NewLabelEncoder([]string{"Wheat", "Wheat"})
	assert.ErrorContains(t, err, "duplicate class")
}

func TestLoadEncodersErrors(t *testing.T) {
	_, err := LoadEncoders(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeFile(t, "encoders.json", `{"Area": ["X"]}`)
	_, err = LoadEncoders(path)
	assert.ErrorContains(t, err, "Crop")

	path = writeFile(t, "encoders.json", `["Area"]`)
	_, err = LoadEncoders(path)
	assert.Error(t, err)
}

func TestLoadArtifacts(t *testing.T) {
	cfg := ArtifactConfig{
		ModelType:    ModelDecisionTree,
		ModelPath:    writeFile(t, "tree.json", treeJSON),
		EncodersPath: writeFile(t, "encoders.json", encodersJSON),
	}
	artifacts, err := LoadArtifacts(cfg)
	require.NoError(t, err)
	assert.NotNil(t, artifacts.Model)
	assert.Len(t, artifacts.Encoders.Area().Classes(), 4)

	cfg.EncodersPath = filepath.Join(t.TempDir(), "missing.json")
	_, err = LoadArtifacts(cfg)
	assert.Error(t, err)

	cfg.ModelPath = filepath.Join(t.TempDir(), "missing.json")
	_, err = LoadArtifacts(cfg)
	assert.ErrorContains(t, err, "load model")
}
