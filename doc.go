// Package ranger provides a fast random forest implementation for Go,
// designed for in-process training and inference on tabular data.
//
// Ranger grows an ensemble of classification trees, each on a bootstrap
// resample of the input matrix with a randomized per-split variable subset,
// and predicts by majority vote. Out-of-bag error, a confusion matrix and
// Gini-based variable importance come out of a single training pass.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/bgreenwell/ranger/forest"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    // Last column is the response.
//	    data := mat.NewDense(6, 2, []float64{
//	        1, 0,
//	        2, 0,
//	        3, 0,
//	        4, 1,
//	        5, 1,
//	        6, 1,
//	    })
//
//	    clf := forest.NewClassifier(
//	        forest.WithNumTrees(100),
//	        forest.WithSeed(42),
//	    )
//	    if err := clf.Fit(data, 1); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Same column layout as the training data; the response column
//	    // is ignored during descent.
//	    preds, err := clf.Predict(mat.NewDense(1, 2, []float64{2.5, 0}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Prediction:", preds.At(0, 0))
//	    fmt.Println("OOB error:", clf.OOBError())
//	}
//
// # Packages
//
//   - forest: the classification forest (trees, splitter, bootstrap, OOB,
//     importance, binary persistence, text reports)
//   - metrics: evaluation metrics (accuracy, error rate, confusion counts)
//   - mongostore: store and load trained forests in MongoDB
//   - pkg/rng: seeded random number service with reproducible per-tree
//     derivation
//   - pkg/errors: structured error types
//   - pkg/log: structured logging interface
//   - core/model: base estimator state and gob persistence helpers
//   - core/parallel: worker-range partitioning for parallel tree growth
//
// # Reproducibility
//
// Given the same data, seed and configuration, training produces
// bit-identical trees, predictions, confusion counts and importance values.
// Trees, predictions and confusion counts are also the same for any number
// of worker threads. Importance is summed per worker and the partial sums
// are added after growth, so a different thread count can change importance
// values in the last bits.
package ranger
