// Package mongostore stores trained forests in MongoDB, one document per
// named forest. Saving the same name again replaces the stored forest.
package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bgreenwell/ranger/forest"
	"github.com/bgreenwell/ranger/pkg/errors"
)

// DefaultCollection is the collection forests are stored in.
const DefaultCollection = "forests"

type treeDoc struct {
	ChildLeft  []int     `bson:"child_left"`
	ChildRight []int     `bson:"child_right"`
	SplitVar   []int     `bson:"split_var"`
	SplitValue []float64 `bson:"split_value"`
}

type forestDoc struct {
	Name         string    `bson:"name"`
	NumVariables int       `bson:"num_variables"`
	DependentVar int       `bson:"dependent_var"`
	Seed         uint64    `bson:"seed"`
	ClassValues  []float64 `bson:"class_values"`
	Trees        []treeDoc `bson:"trees"`
}

func docFromSnapshot(name string, s *forest.Snapshot) forestDoc {
	doc := forestDoc{
		Name:         name,
		NumVariables: s.NumVariables,
		DependentVar: s.DependentVar,
		Seed:         s.Seed,
		ClassValues:  s.ClassValues,
		Trees:        make([]treeDoc, len(s.Trees)),
	}
	for i, t := range s.Trees {
		doc.Trees[i] = treeDoc{
			ChildLeft:  t.ChildLeft,
			ChildRight: t.ChildRight,
			SplitVar:   t.SplitVar,
			SplitValue: t.SplitValue,
		}
	}
	return doc
}

func snapshotFromDoc(doc forestDoc) *forest.Snapshot {
	s := &forest.Snapshot{
		NumVariables: doc.NumVariables,
		DependentVar: doc.DependentVar,
		Seed:         doc.Seed,
		ClassValues:  doc.ClassValues,
		Trees:        make([]*forest.Tree, len(doc.Trees)),
	}
	for i, t := range doc.Trees {
		s.Trees[i] = &forest.Tree{
			ChildLeft:  t.ChildLeft,
			ChildRight: t.ChildRight,
			SplitVar:   t.SplitVar,
			SplitValue: t.SplitValue,
		}
	}
	return s
}

// Save upserts the fitted forest under the given name.
func Save(ctx context.Context, db *mongo.Database, name string, c *forest.Classifier) error {
	snapshot, err := c.Snapshot()
	if err != nil {
		return err
	}

	upsert := true
	_, err = db.Collection(DefaultCollection).ReplaceOne(ctx,
		bson.D{{Key: "name", Value: name}},
		docFromSnapshot(name, snapshot),
		&options.ReplaceOptions{Upsert: &upsert})
	if err != nil {
		return errors.Wrapf(err, "save forest %q", name)
	}
	return nil
}

// Load retrieves a forest saved under the given name. The returned
// classifier is prediction-ready; training-time results such as the
// out-of-bag error are not stored.
func Load(ctx context.Context, db *mongo.Database, name string, opts ...forest.Option) (*forest.Classifier, error) {
	result := db.Collection(DefaultCollection).FindOne(ctx, bson.D{{Key: "name", Value: name}})
	if result.Err() != nil {
		return nil, errors.Wrapf(result.Err(), "load forest %q", name)
	}

	var doc forestDoc
	if err := result.Decode(&doc); err != nil {
		return nil, errors.Wrapf(err, "decode forest %q", name)
	}
	return forest.FromSnapshot(snapshotFromDoc(doc), opts...)
}
