// Command ranger trains and applies classification random forests on CSV
// matrices.
//
//	ranger train -config run.yaml
//	ranger predict -forest out.forest -data test.csv -vars 4 -depvar 4 -out out
//
// Training writes <prefix>.forest (binary forest), <prefix>.confusion and,
// with importance enabled, <prefix>.importance. Prediction writes
// <prefix>.prediction.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/bgreenwell/ranger/forest"
	"github.com/bgreenwell/ranger/pkg/errors"
	"github.com/bgreenwell/ranger/pkg/log"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "train":
		err = runTrain(os.Args[2:])
	case "predict":
		err = runPredict(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ranger: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ranger train -config run.yaml")
	fmt.Fprintln(os.Stderr, "       ranger predict -forest file -data test.csv -vars n -depvar d -out prefix")
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML run configuration")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		return errors.New("train requires -config")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	opts, err := cfg.options()
	if err != nil {
		return err
	}
	if cfg.Verbose {
		opts = append(opts, forest.WithLogger(log.NewZerologLogger(os.Stderr, log.LevelDebug)))
	} else {
		opts = append(opts, forest.WithLogger(log.NewZerologLogger(os.Stderr, log.LevelInfo)))
	}

	data, err := loadCSVMatrix(cfg.Data)
	if err != nil {
		return err
	}

	clf := forest.NewClassifier(opts...)
	if err := clf.Fit(data, cfg.DependentVar); err != nil {
		return err
	}

	prefix := cfg.OutputPrefix
	if prefix == "" {
		prefix = "ranger_out"
	}

	if err := writeFile(prefix+".forest", clf.Save); err != nil {
		return err
	}
	if err := writeFile(prefix+".confusion", clf.WriteConfusion); err != nil {
		return err
	}

	mode, _ := cfg.importanceMode()
	if mode == forest.ImportanceGini {
		importance, err := clf.VariableImportance()
		if err != nil {
			return err
		}
		err = writeFile(prefix+".importance", func(w io.Writer) error {
			for i, v := range importance {
				if _, err := fmt.Fprintf(w, "%d %s\n", i, strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	fmt.Printf("OOB prediction error: %g\n", clf.OOBError())
	return nil
}

func runPredict(args []string) error {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	forestPath := fs.String("forest", "", "trained forest file")
	dataPath := fs.String("data", "", "CSV data to predict")
	numVars := fs.Int("vars", 0, "number of columns in the prediction data")
	depVar := fs.Int("depvar", 0, "dependent variable index the forest was trained with")
	out := fs.String("out", "ranger_out", "output prefix")
	seed := fs.Uint64("seed", 0, "seed for vote tie-breaking")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *forestPath == "" || *dataPath == "" {
		return errors.New("predict requires -forest and -data")
	}

	data, err := loadCSVMatrix(*dataPath)
	if err != nil {
		return err
	}
	_, cols := data.Dims()
	if *numVars == 0 {
		*numVars = cols
	}

	f, err := os.Open(*forestPath)
	if err != nil {
		return errors.Wrapf(err, "open forest %s", *forestPath)
	}
	defer f.Close()

	clf, err := forest.LoadClassifier(f, *numVars, *depVar, forest.WithSeed(*seed))
	if err != nil {
		return err
	}

	preds, err := clf.Predict(data)
	if err != nil {
		return err
	}
	rows, _ := preds.Dims()
	values := make([]float64, rows)
	for i := range values {
		values[i] = preds.At(i, 0)
	}

	return writeFile(*out+".prediction", func(w io.Writer) error {
		return forest.WritePredictions(w, values)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// loadCSVMatrix reads a headerless CSV of floats into a dense matrix.
func loadCSVMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open data %s", path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read data %s", path)
	}
	if len(records) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}

	rows := len(records)
	cols := len(records[0])
	data := make([]float64, 0, rows*cols)
	for i, record := range records {
		if len(record) != cols {
			return nil, errors.Newf("row %d has %d fields, want %d", i, len(record), cols)
		}
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d column %d", i, j)
			}
			data = append(data, v)
		}
	}
	return mat.NewDense(rows, cols, data), nil
}
