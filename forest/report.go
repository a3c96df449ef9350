package forest

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/bgreenwell/ranger/pkg/errors"
)

// WriteConfusion writes the out-of-bag confusion report: a header line with
// the overall error, then a table of counts with class values as column
// headers and one "predicted <c>" row per class. Only samples with a
// defined out-of-bag prediction are counted.
func (c *Classifier) WriteConfusion(w io.Writer) error {
	if err := c.RequireFitted("Classifier", "WriteConfusion"); err != nil {
		return err
	}
	if c.confusion == nil {
		return errors.New("no confusion matrix; the forest was loaded, not trained")
	}

	if _, err := fmt.Fprintf(w, "Overall OOB prediction error (Fraction missclassified): %s\n\n",
		formatValue(c.oobError)); err != nil {
		return errors.Wrap(err, "write confusion header")
	}
	if _, err := fmt.Fprintln(w, "Class specific prediction errors:"); err != nil {
		return errors.Wrap(err, "write confusion header")
	}

	if _, err := fmt.Fprint(w, "           "); err != nil {
		return errors.Wrap(err, "write confusion header")
	}
	for _, classValue := range c.classValues {
		if _, err := fmt.Fprintf(w, "     %s", formatValue(classValue)); err != nil {
			return errors.Wrap(err, "write confusion header")
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return errors.Wrap(err, "write confusion header")
	}

	for predIdx, predValue := range c.classValues {
		if _, err := fmt.Fprintf(w, "predicted %s     ", formatValue(predValue)); err != nil {
			return errors.Wrap(err, "write confusion row")
		}
		for trueIdx := range c.classValues {
			count := c.confusion.Count(trueIdx, predIdx)
			if _, err := fmt.Fprintf(w, "%d%s", count, countPadding(count)); err != nil {
				return errors.Wrap(err, "write confusion row")
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return errors.Wrap(err, "write confusion row")
		}
	}
	return nil
}

// countPadding widens columns as counts grow, keeping the table aligned up
// to six digits.
func countPadding(count int) string {
	switch {
	case count < 10:
		return "     "
	case count < 100:
		return "    "
	case count < 1000:
		return "   "
	case count < 10000:
		return "  "
	case count < 100000:
		return " "
	default:
		return ""
	}
}

// WritePredictions writes the prediction report: a "Predictions:" header,
// then one predicted class value per line. NaN entries, which mark samples
// with no defined prediction, are written as NA.
func WritePredictions(w io.Writer, predictions []float64) error {
	if _, err := fmt.Fprintln(w, "Predictions: "); err != nil {
		return errors.Wrap(err, "write predictions header")
	}
	for _, p := range predictions {
		line := formatValue(p)
		if math.IsNaN(p) {
			line = "NA"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.Wrap(err, "write prediction")
		}
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
