package ml

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// DecisionTree is a regression tree stored as a flat node array with the
// root at index 0.
type DecisionTree struct {
	nodes []TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	Value      float64 `json:"value"`
	IsLeaf     bool    `json:"is_leaf"`
}

type treeArtifact struct {
	Features []string   `json:"features"`
	Nodes    []TreeNode `json:"nodes"`
}

// NewDecisionTree builds a tree from already-decoded nodes.
func NewDecisionTree(nodes []TreeNode) (*DecisionTree, error) {
	if err := validateNodes(nodes); err != nil {
		return nil, err
	}
	return &DecisionTree{nodes: append([]TreeNode(nil), nodes...)}, nil
}

func (dt *DecisionTree) Predict(features FeatureVector) (float64, error) {
	if len(dt.nodes) == 0 {
		return 0, eris.New("ml: model not loaded")
	}
	idx := 0
	// validateNodes guarantees children point forward, so the walk ends.
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.Value, nil
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

func (dt *DecisionTree) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrap(err, "ml: read decision tree")
	}
	var artifact treeArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return eris.Wrap(err, "ml: decode decision tree")
	}
	if err := checkFeatureOrder(artifact.Features); err != nil {
		return err
	}
	if err := validateNodes(artifact.Nodes); err != nil {
		return err
	}
	dt.nodes = artifact.Nodes
	return nil
}

func (dt *DecisionTree) Len() int {
	return len(dt.nodes)
}

func validateNodes(nodes []TreeNode) error {
	if len(nodes) == 0 {
		return eris.New("ml: tree has no nodes")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= NumFeatures {
			return eris.Errorf("ml: node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		if node.LeftChild <= i || node.LeftChild >= len(nodes) {
			return eris.Errorf("ml: node %d: invalid left child %d", i, node.LeftChild)
		}
		if node.RightChild <= i || node.RightChild >= len(nodes) {
			return eris.Errorf("ml: node %d: invalid right child %d", i, node.RightChild)
		}
	}
	return nil
}
