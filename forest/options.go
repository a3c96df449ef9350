package forest

import (
	"github.com/bgreenwell/ranger/pkg/log"
)

// Option is a function that configures a Classifier.
type Option func(*Classifier)

// WithNumTrees sets the number of trees to grow.
func WithNumTrees(n int) Option {
	return func(c *Classifier) {
		c.numTrees = n
	}
}

// WithMtry sets the number of candidate variables evaluated per split.
// Zero selects the default max(1, floor(sqrt(P-1))).
func WithMtry(mtry int) Option {
	return func(c *Classifier) {
		c.mtry = mtry
	}
}

// WithMinNodeSize sets the node size at or below which a node becomes a
// leaf. Zero selects the classification default of 1.
func WithMinNodeSize(n int) Option {
	return func(c *Classifier) {
		c.minNodeSize = n
	}
}

// WithNumThreads sets the number of worker goroutines used for tree growth.
func WithNumThreads(n int) Option {
	return func(c *Classifier) {
		c.numThreads = n
	}
}

// WithSeed sets the forest seed. All randomness (bootstraps, variable
// selection, tie-breaks) derives from it.
func WithSeed(seed uint64) Option {
	return func(c *Classifier) {
		c.seed = seed
	}
}

// WithImportance sets the variable importance mode.
func WithImportance(mode ImportanceMode) Option {
	return func(c *Classifier) {
		c.importanceMode = mode
	}
}

// WithNoSplitVariables excludes the given variable indices from splitting.
// The slice must be sorted ascending and must not contain the dependent
// variable, which is always excluded.
func WithNoSplitVariables(vars []int) Option {
	return func(c *Classifier) {
		c.noSplitVars = vars
	}
}

// WithLogger sets the logger used during training. Defaults to a no-op
// logger, keeping the library silent when embedded.
func WithLogger(logger log.Logger) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}
