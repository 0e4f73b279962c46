package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Client is an authorized consumer that reviews and closes signalements
type Client struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	CreatedAt primitive.DateTime  `bson:"createdAt" json:"createdAt"`
	UpdatedAt primitive.DateTime  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt *primitive.DateTime `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	Nom       string              `bson:"nom" json:"nom"`
	Token     string              `bson:"token,omitempty" json:"token,omitempty"`
}

// ClientSummary is the public projection of a client, embedded in signalements
type ClientSummary struct {
	ID  primitive.ObjectID `bson:"id" json:"id"`
	Nom string             `bson:"nom" json:"nom"`
}

// Summary strips the credential from a client
func (c *Client) Summary() *ClientSummary {
	return &ClientSummary{ID: c.ID, Nom: c.Nom}
}
