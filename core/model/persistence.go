package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/bgreenwell/ranger/pkg/errors"
)

// SaveModel writes a gob-encoded model snapshot to a file. The forest
// package routes its Snapshot type through here; the portable binary format
// is a separate path on the forest itself.
func SaveModel(model interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create model file %s", filename)
	}
	defer file.Close()

	return SaveModelToWriter(model, file)
}

// LoadModel reads a gob-encoded model snapshot from a file into model,
// which must be a pointer.
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "open model file %s", filename)
	}
	defer file.Close()

	return LoadModelFromReader(model, file)
}

// SaveModelToWriter writes a gob-encoded model snapshot to w.
func SaveModelToWriter(model interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(model); err != nil {
		return errors.Wrap(err, "encode model snapshot")
	}
	return nil
}

// LoadModelFromReader reads a gob-encoded model snapshot from r into model,
// which must be a pointer.
func LoadModelFromReader(model interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(model); err != nil {
		return errors.Wrap(err, "decode model snapshot")
	}
	return nil
}
