package forest

import (
	"io"

	"github.com/bgreenwell/ranger/core/model"
	"github.com/bgreenwell/ranger/pkg/errors"
)

// Snapshot is the exported form of a fitted forest, used by the gob
// persistence helpers in core/model and by external stores. It captures
// everything prediction needs plus the seed. The forest-level out-of-bag
// results (predictions, error, confusion matrix) and the other training
// options are not part of it; each tree keeps its OOB sample list.
type Snapshot struct {
	NumVariables int
	DependentVar int
	Seed         uint64
	ClassValues  []float64
	Trees        []*Tree
}

// Snapshot exports the fitted forest.
func (c *Classifier) Snapshot() (*Snapshot, error) {
	if err := c.RequireFitted("Classifier", "Snapshot"); err != nil {
		return nil, err
	}
	return &Snapshot{
		NumVariables: c.numVariables,
		DependentVar: c.dependentVar,
		Seed:         c.seed,
		ClassValues:  c.classValues,
		Trees:        c.trees,
	}, nil
}

// FromSnapshot reconstructs a prediction-ready forest from a snapshot.
func FromSnapshot(s *Snapshot, opts ...Option) (*Classifier, error) {
	if s == nil || len(s.Trees) == 0 {
		return nil, errors.New("empty forest snapshot")
	}
	c := NewClassifier(opts...)
	c.numVariables = s.NumVariables
	c.dependentVar = s.DependentVar
	c.seed = s.Seed
	c.classValues = s.ClassValues
	c.trees = s.Trees
	c.numTrees = len(s.Trees)
	c.SetFitted()
	return c, nil
}

// SaveGob writes the fitted forest to w as a gob-encoded snapshot. This is
// the Go-native persistence path; Save produces the portable binary format.
// Unlike that format, a gob snapshot carries the seed, so tie-breaking
// reproduces without reconfiguration on load.
func (c *Classifier) SaveGob(w io.Writer) error {
	snapshot, err := c.Snapshot()
	if err != nil {
		return err
	}
	return model.SaveModelToWriter(snapshot, w)
}

// LoadGob reads a forest saved by SaveGob.
func LoadGob(r io.Reader, opts ...Option) (*Classifier, error) {
	var snapshot Snapshot
	if err := model.LoadModelFromReader(&snapshot, r); err != nil {
		return nil, err
	}
	return FromSnapshot(&snapshot, opts...)
}
