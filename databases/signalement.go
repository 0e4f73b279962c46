package databases

// go generate: mockery --name SignalementDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adresse-io/signalement-api/models"
)

const signalementName = "signalements"

// SignalementDatabase contains the methods to use with the signalement database.
// Reads exclude soft-deleted documents and, unless asked for, the author field.
type SignalementDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Signalement, error)
	FindOneWithAuthor(ctx context.Context, filter interface{}) (*models.Signalement, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Signalement, error)
	Count(ctx context.Context, filter interface{}) (int64, error)
	InsertOne(ctx context.Context, signalement models.Signalement) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	SoftDeleteOne(ctx context.Context, filter interface{}) error
	SoftDeleteMany(ctx context.Context, filter interface{}) (int64, error)
	Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error
}

type signalementDatabase struct {
	db DatabaseHelper
}

// NewSignalementDatabase initializes a new instance of signalement database with the
// provided db connection
func NewSignalementDatabase(db DatabaseHelper) SignalementDatabase {
	return &signalementDatabase{
		db: db,
	}
}

// notDeleted scopes a filter to live documents. A nil comparison matches both a
// missing field and an explicit null.
func notDeleted(filter interface{}) bson.M {
	scoped := bson.M{"deletedAt": nil}
	if m, ok := filter.(bson.M); ok {
		for k, v := range m {
			scoped[k] = v
		}
	}
	return scoped
}

func (c *signalementDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Signalement, error) {
	signalement := &models.Signalement{}
	opts := options.FindOne().SetProjection(bson.M{"author": 0})
	err := c.db.Collection(signalementName).FindOne(ctx, notDeleted(filter), opts).Decode(&signalement)
	if err != nil {
		return nil, err
	}
	return signalement, nil
}

func (c *signalementDatabase) FindOneWithAuthor(ctx context.Context, filter interface{}) (*models.Signalement, error) {
	signalement := &models.Signalement{}
	err := c.db.Collection(signalementName).FindOne(ctx, notDeleted(filter)).Decode(&signalement)
	if err != nil {
		return nil, err
	}
	return signalement, nil
}

func (c *signalementDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Signalement, error) {
	opts = append(opts, options.Find().SetProjection(bson.M{"author": 0}))
	cursor, err := c.db.Collection(signalementName).Find(ctx, notDeleted(filter), opts...)
	if err != nil {
		return nil, err
	}
	var signalements []models.Signalement
	if err := cursor.Decode(&signalements); err != nil {
		return nil, err
	}
	return signalements, nil
}

func (c *signalementDatabase) Count(ctx context.Context, filter interface{}) (int64, error) {
	return c.db.Collection(signalementName).CountDocuments(ctx, notDeleted(filter))
}

func (c *signalementDatabase) InsertOne(ctx context.Context, signalement models.Signalement) error {
	return c.db.Collection(signalementName).InsertOne(ctx, signalement)
}

// UpdateOne reports how many documents matched the filter
func (c *signalementDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return c.db.Collection(signalementName).UpdateOne(ctx, notDeleted(filter), update)
}

func (c *signalementDatabase) SoftDeleteOne(ctx context.Context, filter interface{}) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	_, err := c.db.Collection(signalementName).UpdateOne(ctx, notDeleted(filter), bson.M{
		"$set": bson.M{"deletedAt": now, "updatedAt": now},
	})
	return err
}

func (c *signalementDatabase) SoftDeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	now := primitive.NewDateTimeFromTime(time.Now())
	return c.db.Collection(signalementName).UpdateMany(ctx, notDeleted(filter), bson.M{
		"$set": bson.M{"deletedAt": now, "updatedAt": now},
	})
}

func (c *signalementDatabase) Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error {
	cursor, err := c.db.Collection(signalementName).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cursor.Decode(results)
}
