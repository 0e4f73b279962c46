package databases

// go generate: mockery --name SourceDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adresse-io/signalement-api/models"
)

const sourceName = "sources"

// SourceDatabase contains the methods to use with the source database
type SourceDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Source, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Source, error)
	InsertOne(ctx context.Context, source models.Source) error
	SoftDeleteOne(ctx context.Context, filter interface{}) error
}

type sourceDatabase struct {
	db DatabaseHelper
}

// NewSourceDatabase initializes a new instance of source database with the provided
// db connection
func NewSourceDatabase(db DatabaseHelper) SourceDatabase {
	return &sourceDatabase{
		db: db,
	}
}

func (c *sourceDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Source, error) {
	source := &models.Source{}
	err := c.db.Collection(sourceName).FindOne(ctx, notDeleted(filter)).Decode(&source)
	if err != nil {
		return nil, err
	}
	return source, nil
}

func (c *sourceDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Source, error) {
	cursor, err := c.db.Collection(sourceName).Find(ctx, notDeleted(filter), opts...)
	if err != nil {
		return nil, err
	}
	var sources []models.Source
	if err := cursor.Decode(&sources); err != nil {
		return nil, err
	}
	return sources, nil
}

func (c *sourceDatabase) InsertOne(ctx context.Context, source models.Source) error {
	return c.db.Collection(sourceName).InsertOne(ctx, source)
}

func (c *sourceDatabase) SoftDeleteOne(ctx context.Context, filter interface{}) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	_, err := c.db.Collection(sourceName).UpdateOne(ctx, notDeleted(filter), map[string]interface{}{
		"$set": map[string]interface{}{"deletedAt": now, "updatedAt": now},
	})
	return err
}
