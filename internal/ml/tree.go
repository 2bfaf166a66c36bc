// Package ml implements the regression model behind the prediction
// service: gradient-boosted regression trees over a numeric matrix,
// with a one-hot encoder for the categorical trigger column. Fitting
// is deterministic for a given dataset.
package ml

import (
	"fmt"
	"sort"
)

// Node is one tree node in flattened form. Leaves carry Value; inner
// nodes route on x[Feature] <= Threshold.
type Node struct {
	Leaf      bool    `json:"leaf"`
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is a regression tree stored as an index-linked node slice.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Predict walks the tree for one feature vector.
func (t *Tree) Predict(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func (t *Tree) validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i, n := range t.Nodes {
		if n.Leaf {
			continue
		}
		if n.Left < 0 || n.Left >= len(t.Nodes) || n.Right < 0 || n.Right >= len(t.Nodes) {
			return fmt.Errorf("tree node %d links out of range", i)
		}
		if n.Feature < 0 {
			return fmt.Errorf("tree node %d has negative feature index", i)
		}
	}
	return nil
}

type treeBuilder struct {
	x        [][]float64
	y        []float64
	maxDepth int
	minLeaf  int
	nodes    []Node
}

func fitTree(x [][]float64, y []float64, maxDepth, minLeaf int) *Tree {
	b := &treeBuilder{x: x, y: y, maxDepth: maxDepth, minLeaf: minLeaf}
	idx := make([]int, len(y))
	for i := range idx {
		idx[i] = i
	}
	b.grow(idx, 0)
	return &Tree{Nodes: b.nodes}
}

// grow appends the subtree for idx and returns its root position.
func (b *treeBuilder) grow(idx []int, depth int) int {
	pos := len(b.nodes)
	b.nodes = append(b.nodes, Node{Leaf: true, Value: mean(b.y, idx)})
	if depth >= b.maxDepth || len(idx) < 2*b.minLeaf {
		return pos
	}
	feat, thr, ok := b.bestSplit(idx)
	if !ok {
		return pos
	}
	var left, right []int
	for _, i := range idx {
		if b.x[i][feat] <= thr {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < b.minLeaf || len(right) < b.minLeaf {
		return pos
	}
	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[pos] = Node{Feature: feat, Threshold: thr, Left: l, Right: r}
	return pos
}

// bestSplit scans every feature and every boundary between distinct
// sorted values, maximizing the squared-error reduction. Features are
// visited in index order and only strictly better splits win, so the
// result does not depend on map iteration or randomness.
func (b *treeBuilder) bestSplit(idx []int) (int, float64, bool) {
	if len(idx) == 0 {
		return 0, 0, false
	}
	nFeatures := len(b.x[idx[0]])
	var (
		totalSum, totalSq float64
	)
	for _, i := range idx {
		totalSum += b.y[i]
		totalSq += b.y[i] * b.y[i]
	}
	n := float64(len(idx))
	parentSSE := totalSq - totalSum*totalSum/n

	bestGain := 1e-12
	bestFeat, bestThr, found := 0, 0.0, false

	order := make([]int, len(idx))
	for feat := 0; feat < nFeatures; feat++ {
		copy(order, idx)
		sortByFeature(order, b.x, feat)

		var leftSum, leftSq float64
		for k := 0; k < len(order)-1; k++ {
			i := order[k]
			leftSum += b.y[i]
			leftSq += b.y[i] * b.y[i]
			cur := b.x[i][feat]
			next := b.x[order[k+1]][feat]
			if cur == next {
				continue
			}
			nl := float64(k + 1)
			nr := n - nl
			if int(nl) < b.minLeaf || int(nr) < b.minLeaf {
				continue
			}
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			gain := parentSSE - sse
			if gain > bestGain {
				bestGain = gain
				bestFeat = feat
				bestThr = cur + (next-cur)/2
				found = true
			}
		}
	}
	return bestFeat, bestThr, found
}

func mean(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var s float64
	for _, i := range idx {
		s += y[i]
	}
	return s / float64(len(idx))
}

// sortByFeature orders row indices by one feature value, breaking ties
// by index so fitting stays deterministic.
func sortByFeature(idx []int, x [][]float64, feat int) {
	sort.Slice(idx, func(a, b int) bool {
		va, vb := x[idx[a]][feat], x[idx[b]][feat]
		if va != vb {
			return va < vb
		}
		return idx[a] < idx[b]
	})
}
