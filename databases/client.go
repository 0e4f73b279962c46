package databases

// go generate: mockery --name ClientDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adresse-io/signalement-api/models"
)

const clientName = "clients"

// ClientDatabase contains the methods to use with the client database
type ClientDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Client, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Client, error)
	InsertOne(ctx context.Context, client models.Client) error
}

type clientDatabase struct {
	db DatabaseHelper
}

// NewClientDatabase initializes a new instance of client database with the provided
// db connection
func NewClientDatabase(db DatabaseHelper) ClientDatabase {
	return &clientDatabase{
		db: db,
	}
}

func (c *clientDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Client, error) {
	client := &models.Client{}
	err := c.db.Collection(clientName).FindOne(ctx, notDeleted(filter)).Decode(&client)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (c *clientDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Client, error) {
	cursor, err := c.db.Collection(clientName).Find(ctx, notDeleted(filter), opts...)
	if err != nil {
		return nil, err
	}
	var clients []models.Client
	if err := cursor.Decode(&clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *clientDatabase) InsertOne(ctx context.Context, client models.Client) error {
	return c.db.Collection(clientName).InsertOne(ctx, client)
}
