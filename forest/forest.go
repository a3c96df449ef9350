package forest

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/bgreenwell/ranger/core/model"
	"github.com/bgreenwell/ranger/core/parallel"
	"github.com/bgreenwell/ranger/metrics"
	"github.com/bgreenwell/ranger/pkg/errors"
	"github.com/bgreenwell/ranger/pkg/log"
	"github.com/bgreenwell/ranger/pkg/rng"
)

// Classifier is a classification random forest.
//
// Construct with NewClassifier, train with Fit, then query Predict,
// OOBError, Confusion and VariableImportance. A fitted Classifier is
// read-only and safe for concurrent prediction.
type Classifier struct {
	model.BaseEstimator

	// Configuration.
	numTrees       int
	mtry           int
	minNodeSize    int
	numThreads     int
	seed           uint64
	importanceMode ImportanceMode
	noSplitVars    []int
	logger         log.Logger

	// Learned state.
	numVariables int
	dependentVar int
	classValues  []float64
	trees        []*Tree
	importance   *giniImportance

	// Out-of-bag results from the training pass.
	oobPredictions []float64
	oobError       float64
	confusion      *metrics.ConfusionMatrix
}

// NewClassifier creates a Classifier with the given options applied over
// the defaults: 500 trees, one thread, seed 0, importance disabled.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		numTrees:   500,
		numThreads: 1,
		logger:     log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fit grows the forest on data, whose column dependentVar holds the
// response. The remaining columns are the predictor variables.
func (c *Classifier) Fit(data mat.Matrix, dependentVar int) error {
	d, err := NewDataset(data)
	if err != nil {
		return errors.Wrap(err, "Fit")
	}

	if err := c.validate(d, dependentVar); err != nil {
		return err
	}

	c.numVariables = d.Cols()
	c.dependentVar = dependentVar
	classValues, classIDs := classTable(d, dependentVar)
	c.classValues = classValues

	splitVars, noSplitAll := c.splitVariables(d)
	mtry := c.mtry
	if mtry == 0 {
		mtry = defaultMtry(d.Cols())
	}
	if mtry > len(splitVars) {
		return errors.NewValidationError("mtry", "exceeds the number of split variables", mtry)
	}
	minNodeSize := c.minNodeSize
	if minNodeSize == 0 {
		minNodeSize = 1
	}

	c.logger.Info("growing forest",
		"num_trees", c.numTrees,
		"num_samples", d.Rows(),
		"num_variables", d.Cols(),
		"mtry", mtry,
		"min_node_size", minNodeSize,
		"num_threads", c.numThreads,
		"seed", c.seed,
	)

	// Each worker grows a contiguous range of trees sequentially, writing
	// only into its own slice of the result and its own importance
	// accumulator. Tree t's RNG derives from the forest seed and t, so the
	// output does not depend on scheduling.
	c.trees = make([]*Tree, c.numTrees)
	ranges := parallel.EqualRanges(c.numTrees, c.numThreads)

	var workerImp []*giniImportance
	if c.importanceMode == ImportanceGini {
		workerImp = make([]*giniImportance, len(ranges))
		for i := range workerImp {
			workerImp[i] = newGiniImportance(d.Cols(), noSplitAll)
		}
	}

	parallel.RunRanges(ranges, func(worker int, r parallel.Range) {
		var imp *giniImportance
		if workerImp != nil {
			imp = workerImp[worker]
		}
		for t := r.Start; t < r.End; t++ {
			g := rng.Derive(c.seed, t)
			c.trees[t] = growTree(d, dependentVar, classValues, classIDs,
				mtry, minNodeSize, splitVars, g, imp)
		}
		c.logger.Debug("worker finished", "worker", worker, "trees", r.End-r.Start)
	})

	if workerImp != nil {
		merged := newGiniImportance(d.Cols(), noSplitAll)
		for _, imp := range workerImp {
			merged.merge(imp)
		}
		c.importance = merged
	}

	c.computeOOB(d, classIDs)
	c.SetFitted()

	c.logger.Info("forest grown", "oob_error", c.oobError)
	return nil
}

func (c *Classifier) validate(d *Dataset, dependentVar int) error {
	if c.numTrees < 1 {
		return errors.NewValidationError("num_trees", "must be at least 1", c.numTrees)
	}
	if c.numThreads < 1 {
		return errors.NewValidationError("num_threads", "must be at least 1", c.numThreads)
	}
	if dependentVar < 0 || dependentVar >= d.Cols() {
		return errors.NewValidationError("dependent_var_id", "outside the data columns", dependentVar)
	}
	if c.minNodeSize < 0 {
		return errors.NewValidationError("min_node_size", "must not be negative", c.minNodeSize)
	}
	for i, v := range c.noSplitVars {
		if v < 0 || v >= d.Cols() {
			return errors.NewValidationError("no_split_variables", "index outside the data columns", v)
		}
		if i > 0 && c.noSplitVars[i-1] >= v {
			return errors.NewValidationError("no_split_variables", "must be sorted ascending without duplicates", c.noSplitVars)
		}
		if v == dependentVar {
			return errors.NewValidationError("no_split_variables", "must not contain the dependent variable", v)
		}
	}
	return nil
}

// splitVariables returns the allowed split variables and the full sorted
// exclusion set (user exclusions plus the dependent variable).
func (c *Classifier) splitVariables(d *Dataset) (splitVars, noSplitAll []int) {
	noSplitAll = make([]int, 0, len(c.noSplitVars)+1)
	noSplitAll = append(noSplitAll, c.noSplitVars...)
	noSplitAll = append(noSplitAll, c.dependentVar)
	sort.Ints(noSplitAll)

	excluded := make(map[int]bool, len(noSplitAll))
	for _, v := range noSplitAll {
		excluded[v] = true
	}
	for v := 0; v < d.Cols(); v++ {
		if !excluded[v] {
			splitVars = append(splitVars, v)
		}
	}
	return splitVars, noSplitAll
}

func defaultMtry(numVariables int) int {
	mtry := int(math.Sqrt(float64(numVariables - 1)))
	if mtry < 1 {
		mtry = 1
	}
	return mtry
}

// Predict returns the majority-vote class value for each row of X, as an
// (n x 1) matrix. X must have the same column layout the forest was trained
// on (the response column, if present, is ignored during descent).
func (c *Classifier) Predict(X mat.Matrix) (*mat.Dense, error) {
	if err := c.RequireFitted("Classifier", "Predict"); err != nil {
		return nil, err
	}
	rows, cols := X.Dims()
	if cols != c.numVariables {
		return nil, errors.NewDimensionError("Predict", c.numVariables, cols, 1)
	}

	// A fresh generator seeded from the forest seed keeps tie-breaking
	// reproducible across calls and across save/load.
	g := rng.New(c.seed)
	votes := make([]int, len(c.classValues))

	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		for k := range votes {
			votes[k] = 0
		}
		for _, tree := range c.trees {
			value := tree.Predict(func(varID int) float64 { return X.At(i, varID) })
			votes[c.classIndex(value)]++
		}
		out.Set(i, 0, c.classValues[g.PickMax(votes)])
	}
	return out, nil
}

func (c *Classifier) classIndex(value float64) int {
	for k, cv := range c.classValues {
		if cv == value {
			return k
		}
	}
	// Leaves only ever store members of the class set.
	panic("ranger: leaf value not in class set")
}

// computeOOB tallies, for every training sample, the votes of the trees
// that did not see it, and derives the out-of-bag predictions, the overall
// error and the confusion matrix. Samples that were drawn into every
// bootstrap have no vote; their prediction is NaN and they are excluded
// from the error and the confusion counts.
func (c *Classifier) computeOOB(d *Dataset, classIDs []int) {
	n := d.Rows()
	k := len(c.classValues)
	voteCounts := make([][]int, n)

	for _, tree := range c.trees {
		for _, s := range tree.OOB {
			if voteCounts[s] == nil {
				voteCounts[s] = make([]int, k)
			}
			value := tree.PredictDataset(d, s)
			voteCounts[s][c.classIndex(value)]++
		}
	}

	g := rng.New(c.seed)
	c.oobPredictions = make([]float64, n)
	c.confusion = metrics.NewConfusionMatrix(c.classValues)

	undefined := 0
	defined := 0
	misclassified := 0
	for i := 0; i < n; i++ {
		if voteCounts[i] == nil {
			c.oobPredictions[i] = math.NaN()
			undefined++
			continue
		}
		predIdx := g.PickMax(voteCounts[i])
		c.oobPredictions[i] = c.classValues[predIdx]

		defined++
		trueIdx := classIDs[i]
		if predIdx != trueIdx {
			misclassified++
		}
		c.confusion.Add(trueIdx, predIdx)
	}

	if undefined > 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("oob_error",
			"samples never out-of-bag in any tree"))
		c.logger.Warn("samples without OOB votes excluded from error", "count", undefined)
	}
	if defined > 0 {
		c.oobError = float64(misclassified) / float64(defined)
	} else {
		c.oobError = math.NaN()
	}
}

// OOBError returns the overall out-of-bag prediction error: the fraction of
// misclassified samples among those with at least one out-of-bag vote.
func (c *Classifier) OOBError() float64 {
	return c.oobError
}

// OOBPredictions returns the per-sample out-of-bag majority votes from the
// training pass. Samples never held out are NaN.
func (c *Classifier) OOBPredictions() []float64 {
	return c.oobPredictions
}

// Confusion returns the confusion matrix over the defined out-of-bag
// predictions, or nil before Fit.
func (c *Classifier) Confusion() *metrics.ConfusionMatrix {
	return c.confusion
}

// VariableImportance returns the accumulated Gini importance per variable,
// excluding the response and the no-split variables in compressed column
// order. It returns an error when importance was not enabled.
func (c *Classifier) VariableImportance() ([]float64, error) {
	if err := c.RequireFitted("Classifier", "VariableImportance"); err != nil {
		return nil, err
	}
	if c.importanceMode != ImportanceGini || c.importance == nil {
		return nil, errors.New("variable importance was not computed; use WithImportance(ImportanceGini)")
	}
	return c.importance.values, nil
}

// TreeOOBAccuracies returns each tree's accuracy over its own out-of-bag
// samples, for diagnostics. Requires the training data.
func (c *Classifier) TreeOOBAccuracies(data mat.Matrix) ([]float64, error) {
	if err := c.RequireFitted("Classifier", "TreeOOBAccuracies"); err != nil {
		return nil, err
	}
	d, err := NewDataset(data)
	if err != nil {
		return nil, errors.Wrap(err, "TreeOOBAccuracies")
	}
	accs := make([]float64, len(c.trees))
	for i, tree := range c.trees {
		accs[i], _ = tree.oobAccuracy(d, c.dependentVar)
	}
	return accs, nil
}

// Trees returns the grown trees. The slice and the trees are read-only.
func (c *Classifier) Trees() []*Tree {
	return c.trees
}

// ClassValues returns the class set in first-seen order.
func (c *Classifier) ClassValues() []float64 {
	return c.classValues
}

// NumVariables returns the variable count the forest was trained with.
func (c *Classifier) NumVariables() int {
	return c.numVariables
}

// DependentVar returns the response column index.
func (c *Classifier) DependentVar() int {
	return c.dependentVar
}

// Seed returns the forest seed.
func (c *Classifier) Seed() uint64 {
	return c.seed
}
