package forest

import (
	"github.com/bgreenwell/ranger/pkg/rng"
)

// Tree is a single classification tree, represented as parallel arrays
// indexed by node ID. Node 0 is the root; a child ID of 0 means no child,
// so a node is a leaf iff both child entries are 0.
//
// SplitValue holds the threshold of an internal node and the predicted
// class value (an element of the forest's class set, not a class ID) of a
// leaf. SplitVar is meaningless at leaves.
type Tree struct {
	ChildLeft  []int
	ChildRight []int
	SplitVar   []int
	SplitValue []float64

	// OOB lists the sample IDs not drawn into this tree's bootstrap,
	// sorted ascending. Empty for trees read by LoadClassifier or from the
	// Mongo store; kept by the gob snapshot path.
	OOB []int
}

// NumNodes returns the number of nodes in the tree.
func (t *Tree) NumNodes() int { return len(t.SplitValue) }

// IsLeaf reports whether node is terminal.
func (t *Tree) IsLeaf(node int) bool {
	return t.ChildLeft[node] == 0 && t.ChildRight[node] == 0
}

// Predict descends from the root and returns the class value stored at the
// reached leaf. row reads the input's value for a variable index.
func (t *Tree) Predict(row func(varID int) float64) float64 {
	node := 0
	for !t.IsLeaf(node) {
		if row(t.SplitVar[node]) <= t.SplitValue[node] {
			node = t.ChildLeft[node]
		} else {
			node = t.ChildRight[node]
		}
	}
	return t.SplitValue[node]
}

// PredictDataset descends for row r of a dataset.
func (t *Tree) PredictDataset(d *Dataset, r int) float64 {
	return t.Predict(func(varID int) float64 { return d.Get(r, varID) })
}

// treeGrower holds the per-tree growth state. The splitter and its buffers
// are private to the grower, as is the RNG, so trees grow concurrently
// without shared mutable state.
type treeGrower struct {
	data         *Dataset
	dependentVar int
	classValues  []float64
	classIDs     []int

	mtry        int
	minNodeSize int
	splitVars   []int // allowed split variables, sorted ascending

	g        *rng.RNG
	split    *splitter
	imp      *giniImportance
	countBuf []int

	tree *Tree

	// sampleIDs[n] holds the training samples reaching node n. Released
	// once the node is split; children reference their own subsets.
	sampleIDs [][]int
}

// growTree builds one classification tree on a fresh bootstrap sample.
// imp may be nil when importance is disabled.
func growTree(data *Dataset, dependentVar int, classValues []float64, classIDs []int,
	mtry, minNodeSize int, splitVars []int, g *rng.RNG, imp *giniImportance) *Tree {

	tg := &treeGrower{
		data:         data,
		dependentVar: dependentVar,
		classValues:  classValues,
		classIDs:     classIDs,
		mtry:         mtry,
		minNodeSize:  minNodeSize,
		splitVars:    splitVars,
		g:            g,
		split:        newSplitter(data, classIDs, len(classValues)),
		imp:          imp,
		countBuf:     make([]int, len(classValues)),
		tree:         &Tree{},
	}

	tg.bootstrap()
	tg.grow()
	return tg.tree
}

// bootstrap draws N sample IDs with replacement and records the
// complementary out-of-bag set. Duplicates are preserved in the root's
// sample list, so multiplicities act as weights.
func (tg *treeGrower) bootstrap() {
	n := tg.data.Rows()
	inBag := make([]bool, n)

	root := tg.g.SampleWithReplacement(n, n)
	for _, s := range root {
		inBag[s] = true
	}

	oob := make([]int, 0, n/3)
	for i := 0; i < n; i++ {
		if !inBag[i] {
			oob = append(oob, i)
		}
	}

	tg.sampleIDs = [][]int{root}
	tg.tree.OOB = oob
}

// grow processes nodes in creation order, splitting each or finalizing it
// as a leaf, until no unprocessed nodes remain.
func (tg *treeGrower) grow() {
	tg.appendNode()

	for node := 0; node < tg.tree.NumNodes(); node++ {
		tg.splitNode(node)
	}
}

func (tg *treeGrower) appendNode() int {
	t := tg.tree
	t.ChildLeft = append(t.ChildLeft, 0)
	t.ChildRight = append(t.ChildRight, 0)
	t.SplitVar = append(t.SplitVar, 0)
	t.SplitValue = append(t.SplitValue, 0)
	if len(tg.sampleIDs) < t.NumNodes() {
		tg.sampleIDs = append(tg.sampleIDs, nil)
	}
	return t.NumNodes() - 1
}

// splitNode decides the fate of one node: leaf by stopping rule, leaf
// because no valid split exists, or internal with two new children.
func (tg *treeGrower) splitNode(node int) {
	samples := tg.sampleIDs[node]

	// Stop if the node is small enough.
	if len(samples) <= tg.minNodeSize {
		tg.makeLeaf(node, tg.estimate(samples))
		return
	}

	// Stop if the node is pure.
	pure := true
	pureValue := tg.data.Get(samples[0], tg.dependentVar)
	for _, s := range samples[1:] {
		if tg.data.Get(s, tg.dependentVar) != pureValue {
			pure = false
			break
		}
	}
	if pure {
		tg.makeLeaf(node, pureValue)
		return
	}

	candidates := tg.g.SampleWithoutReplacement(tg.mtry, tg.splitVars)
	best, ok := tg.split.findBestSplit(samples, candidates)
	if !ok {
		tg.makeLeaf(node, tg.estimate(samples))
		return
	}

	tg.tree.SplitVar[node] = best.varID
	tg.tree.SplitValue[node] = best.value

	if tg.imp != nil {
		tg.split.countClasses(tg.countBuf, samples)
		sumNode := 0.0
		for _, c := range tg.countBuf {
			sumNode += float64(c * c)
		}
		tg.imp.add(best.varID, best.decrease, sumNode, len(samples))
	}

	left := tg.appendNode()
	right := tg.appendNode()
	tg.tree.ChildLeft[node] = left
	tg.tree.ChildRight[node] = right

	// Route every sample to exactly one child.
	var leftSamples, rightSamples []int
	for _, s := range samples {
		if tg.data.Get(s, best.varID) <= best.value {
			leftSamples = append(leftSamples, s)
		} else {
			rightSamples = append(rightSamples, s)
		}
	}
	tg.sampleIDs[left] = leftSamples
	tg.sampleIDs[right] = rightSamples
	tg.sampleIDs[node] = nil
}

// estimate returns the majority class value of the given samples, ties
// broken uniformly at random via the tree's RNG.
func (tg *treeGrower) estimate(samples []int) float64 {
	tg.split.countClasses(tg.countBuf, samples)
	return tg.classValues[tg.g.PickMax(tg.countBuf)]
}

func (tg *treeGrower) makeLeaf(node int, value float64) {
	tg.tree.SplitValue[node] = value
	tg.sampleIDs[node] = nil
}

// oobAccuracy returns the fraction of this tree's out-of-bag samples it
// classifies correctly, and the number of OOB samples. Used for per-tree
// diagnostics only; forest-level error aggregates votes instead.
func (t *Tree) oobAccuracy(d *Dataset, dependentVar int) (float64, int) {
	if len(t.OOB) == 0 {
		return 0, 0
	}
	wrong := 0
	for _, s := range t.OOB {
		if t.PredictDataset(d, s) != d.Get(s, dependentVar) {
			wrong++
		}
	}
	return 1 - float64(wrong)/float64(len(t.OOB)), len(t.OOB)
}
