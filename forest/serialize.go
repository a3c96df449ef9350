package forest

import (
	"encoding/binary"
	"io"

	"github.com/bgreenwell/ranger/pkg/errors"
)

// TreeTypeClassification is the tree-type tag stored in forest files.
const TreeTypeClassification uint32 = 1

// The forest blob is little-endian:
//
//	u64 num_variables
//	u32 tree_type_tag
//	vector<f64> class_values
//	repeat per tree:
//	    vector<vector<u64>> child_node_ids   (outer length 2: left, right)
//	    vector<u64>         split_var_ids
//	    vector<f64>         split_values
//
// where vector<T> is a u64 length followed by that many elements. The tree
// count is implicit; readers consume trees until EOF.

// Save writes the fitted forest to w in the binary format above.
func (c *Classifier) Save(w io.Writer) error {
	if err := c.RequireFitted("Classifier", "Save"); err != nil {
		return err
	}

	if err := writeU64(w, uint64(c.numVariables)); err != nil {
		return errors.Wrap(err, "write num_variables")
	}
	if err := binary.Write(w, binary.LittleEndian, TreeTypeClassification); err != nil {
		return errors.Wrap(err, "write tree type")
	}
	if err := writeF64Vector(w, c.classValues); err != nil {
		return errors.Wrap(err, "write class values")
	}

	for i, tree := range c.trees {
		if err := writeTree(w, tree); err != nil {
			return errors.Wrapf(err, "write tree %d", i)
		}
	}
	return nil
}

// LoadClassifier reads a forest saved by Save. numVariables and
// dependentVar describe the dataset predictions will run on; when the saved
// variable count exceeds numVariables, the dependent column is assumed
// absent from the prediction data and every split variable at or above
// dependentVar is shifted down by one.
func LoadClassifier(r io.Reader, numVariables, dependentVar int, opts ...Option) (*Classifier, error) {
	savedNumVars, err := readU64(r)
	if err != nil {
		return nil, errors.Wrap(err, "read num_variables")
	}

	var treeType uint32
	if err := binary.Read(r, binary.LittleEndian, &treeType); err != nil {
		return nil, errors.Wrap(err, "read tree type")
	}
	if treeType != TreeTypeClassification {
		return nil, errors.NewWrongTreeTypeError(TreeTypeClassification, treeType)
	}

	classValues, err := readF64Vector(r)
	if err != nil {
		return nil, errors.Wrap(err, "read class values")
	}

	var trees []*Tree
	for {
		tree, err := readTree(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read tree %d", len(trees))
		}
		trees = append(trees, tree)
	}

	if int(savedNumVars) > numVariables {
		for _, tree := range trees {
			for n, v := range tree.SplitVar {
				if v >= dependentVar {
					tree.SplitVar[n] = v - 1
				}
			}
		}
	}

	c := NewClassifier(opts...)
	c.numVariables = numVariables
	c.dependentVar = dependentVar
	c.classValues = classValues
	c.trees = trees
	c.numTrees = len(trees)
	c.SetFitted()
	return c, nil
}

func writeTree(w io.Writer, t *Tree) error {
	if err := writeU64(w, 2); err != nil {
		return err
	}
	if err := writeIntVector(w, t.ChildLeft); err != nil {
		return err
	}
	if err := writeIntVector(w, t.ChildRight); err != nil {
		return err
	}
	if err := writeIntVector(w, t.SplitVar); err != nil {
		return err
	}
	return writeF64Vector(w, t.SplitValue)
}

func readTree(r io.Reader) (*Tree, error) {
	outer, err := readU64(r)
	if err != nil {
		return nil, err // io.EOF here means a clean end of the tree list
	}
	if outer != 2 {
		return nil, errors.Newf("malformed child node table: outer length %d, want 2", outer)
	}

	left, err := readIntVector(r)
	if err != nil {
		return nil, unexpectedEOF(err)
	}
	right, err := readIntVector(r)
	if err != nil {
		return nil, unexpectedEOF(err)
	}
	if len(left) != len(right) {
		return nil, errors.Newf("child node tables differ in length: %d vs %d", len(left), len(right))
	}

	splitVars, err := readIntVector(r)
	if err != nil {
		return nil, unexpectedEOF(err)
	}
	splitValues, err := readF64Vector(r)
	if err != nil {
		return nil, unexpectedEOF(err)
	}
	if len(splitVars) != len(left) || len(splitValues) != len(left) {
		return nil, errors.Newf("tree arrays differ in length: %d nodes, %d split vars, %d split values",
			len(left), len(splitVars), len(splitValues))
	}

	return &Tree{
		ChildLeft:  left,
		ChildRight: right,
		SplitVar:   splitVars,
		SplitValue: splitValues,
	}, nil
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func writeU64(w io.Writer, v uint64) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func readU64(r io.Reader) (uint64, error) {
	var v uint64
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func writeIntVector(w io.Writer, values []int) error {
	if err := writeU64(w, uint64(len(values))); err != nil {
		return err
	}
	for _, v := range values {
		if err := writeU64(w, uint64(v)); err != nil {
			return err
		}
	}
	return nil
}

func readIntVector(r io.Reader) ([]int, error) {
	n, err := readU64(r)
	if err != nil {
		return nil, err
	}
	values := make([]int, n)
	for i := range values {
		v, err := readU64(r)
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		values[i] = int(v)
	}
	return values, nil
}

func writeF64Vector(w io.Writer, values []float64) error {
	if err := writeU64(w, uint64(len(values))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, values)
}

func readF64Vector(r io.Reader) ([]float64, error) {
	n, err := readU64(r)
	if err != nil {
		return nil, err
	}
	values := make([]float64, n)
	if err := binary.Read(r, binary.LittleEndian, values); err != nil {
		return nil, unexpectedEOF(err)
	}
	return values, nil
}
