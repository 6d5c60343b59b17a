package model

import (
	"fmt"

	"github.com/abelzeko/water-quality/internal/entities"
)

// Forest averages the leaf vectors reached in every tree
type Forest struct {
	trees       []Tree
	numFeatures int
	features    []string
}

func newForest(doc *Document) (*Forest, error) {
	if len(doc.Trees) == 0 {
		return nil, fmt.Errorf("%w: forest has no trees", entities.ErrSchemaMismatch)
	}

	n := doc.NumFeatures
	if n == 0 {
		n = len(doc.Features)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: forest does not declare its feature count", entities.ErrSchemaMismatch)
	}
	if len(doc.Features) > 0 && len(doc.Features) != n {
		return nil, fmt.Errorf("%w: forest lists %d features but declares %d", entities.ErrSchemaMismatch, len(doc.Features), n)
	}

	for t, tree := range doc.Trees {
		if err := validateTree(tree, n); err != nil {
			return nil, fmt.Errorf("tree %d: %w", t, err)
		}
	}

	return &Forest{
		trees:       doc.Trees,
		numFeatures: n,
		features:    append([]string(nil), doc.Features...),
	}, nil
}

func validateTree(tree Tree, numFeatures int) error {
	if len(tree.Nodes) == 0 {
		return fmt.Errorf("%w: tree has no nodes", entities.ErrSchemaMismatch)
	}
	for i, node := range tree.Nodes {
		if node.isLeaf() {
			if len(node.Leaf) != len(entities.Pollutants) {
				return fmt.Errorf("%w: leaf %d has %d values, want %d", entities.ErrSchemaMismatch, i, len(node.Leaf), len(entities.Pollutants))
			}
			continue
		}
		if node.Feature < 0 || node.Feature >= numFeatures {
			return fmt.Errorf("%w: node %d splits on feature %d of %d", entities.ErrSchemaMismatch, i, node.Feature, numFeatures)
		}
		// children must point forward so traversal always terminates
		if node.Left <= i || node.Left >= len(tree.Nodes) || node.Right <= i || node.Right >= len(tree.Nodes) {
			return fmt.Errorf("%w: node %d has invalid children %d/%d", entities.ErrSchemaMismatch, i, node.Left, node.Right)
		}
	}
	return nil
}

func (n Node) isLeaf() bool {
	return len(n.Leaf) > 0
}

// NumFeatures returns the expected row width
func (f *Forest) NumFeatures() int {
	return f.numFeatures
}

// FeatureNames returns the training columns if the artifact listed them
func (f *Forest) FeatureNames() []string {
	return append([]string(nil), f.features...)
}

// Predict walks each tree (x[feature] <= threshold goes left) and averages the leaves
func (f *Forest) Predict(features entities.EncodedFeatures) (entities.PredictionVector, error) {
	var out entities.PredictionVector
	if features.Len() != f.numFeatures {
		return out, fmt.Errorf("%w: got %d features, want %d", entities.ErrModelInvocation, features.Len(), f.numFeatures)
	}

	x := features.Values()
	for _, tree := range f.trees {
		node := tree.Nodes[0]
		for !node.isLeaf() {
			if x[node.Feature] <= node.Threshold {
				node = tree.Nodes[node.Left]
			} else {
				node = tree.Nodes[node.Right]
			}
		}
		for i := range out {
			out[i] += node.Leaf[i]
		}
	}

	for i := range out {
		out[i] /= float64(len(f.trees))
	}
	return out, checkFinite(out)
}
