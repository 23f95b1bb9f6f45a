package ml

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// RandomForest averages the predictions of its regression trees.
type RandomForest struct {
	trees []*DecisionTree
}

type forestArtifact struct {
	Features []string     `json:"features"`
	Trees    [][]TreeNode `json:"trees"`
}

func (rf *RandomForest) Predict(features FeatureVector) (float64, error) {
	if len(rf.trees) == 0 {
		return 0, eris.New("ml: model not loaded")
	}
	sum := 0.0
	for _, tree := range rf.trees {
		value, err := tree.Predict(features)
		if err != nil {
			return 0, err
		}
		sum += value
	}
	return sum / float64(len(rf.trees)), nil
}

func (rf *RandomForest) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrap(err, "ml: read random forest")
	}
	var artifact forestArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return eris.Wrap(err, "ml: decode random forest")
	}
	if err := checkFeatureOrder(artifact.Features); err != nil {
		return err
	}
	if len(artifact.Trees) == 0 {
		return eris.New("ml: random forest has no trees")
	}
	trees := make([]*DecisionTree, 0, len(artifact.Trees))
	for i, nodes := range artifact.Trees {
		tree, err := NewDecisionTree(nodes)
		if err != nil {
			return eris.Wrapf(err, "ml: tree %d", i)
		}
		trees = append(trees, tree)
	}
	rf.trees = trees
	return nil
}

func (rf *RandomForest) NumTrees() int {
	return len(rf.trees)
}
