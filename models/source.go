package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SourceType discriminates public widgets from private partner feeds
type SourceType string

// Source types
const (
	SourceTypePublic  SourceType = "PUBLIC"
	SourceTypePrivate SourceType = "PRIVATE"
)

// Source is a submitting integration or channel
type Source struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	CreatedAt primitive.DateTime  `bson:"createdAt" json:"createdAt"`
	UpdatedAt primitive.DateTime  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt *primitive.DateTime `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	Nom       string              `bson:"nom" json:"nom"`
	Type      SourceType          `bson:"type" json:"type"`
	// Token is the private-source credential, PUBLIC sources have none
	Token string `bson:"token,omitempty" json:"token,omitempty"`
}

// SourceSummary is the public projection of a source, embedded in signalements
type SourceSummary struct {
	ID   primitive.ObjectID `bson:"id" json:"id"`
	Nom  string             `bson:"nom" json:"nom"`
	Type SourceType         `bson:"type" json:"type"`
}

// Summary strips the credential from a source
func (s *Source) Summary() *SourceSummary {
	return &SourceSummary{ID: s.ID, Nom: s.Nom, Type: s.Type}
}
