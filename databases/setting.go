package databases

// go generate: mockery --name SettingDatabase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adresse-io/signalement-api/models"
)

const settingName = "settings"

// SettingDatabase wraps the generic settings collection behind typed accessors
// for the known keys: per-commune configuration and the two global allow-lists.
// Toggles are conditional updates so concurrent administrative edits cannot
// lose writes.
type SettingDatabase interface {
	GetCommuneSettings(ctx context.Context, codeCommune string) (*models.CommuneSettings, error)
	SetCommuneSettings(ctx context.Context, codeCommune string, settings models.CommuneSettings) error
	DeleteCommuneSettings(ctx context.Context, codeCommune string) error
	GetEnabledList(ctx context.Context, key models.EnabledListKey) ([]string, error)
	IsInEnabledList(ctx context.Context, key models.EnabledListKey, id string) (bool, error)
	ToggleEnabledList(ctx context.Context, key models.EnabledListKey, id string) (bool, error)
}

type settingDatabase struct {
	db DatabaseHelper
}

// NewSettingDatabase initializes a new instance of setting database with the provided
// db connection
func NewSettingDatabase(db DatabaseHelper) SettingDatabase {
	return &settingDatabase{
		db: db,
	}
}

type communeSettingDoc struct {
	Name    string                 `bson:"name"`
	Content models.CommuneSettings `bson:"content"`
}

type enabledListDoc struct {
	Name    string   `bson:"name"`
	Content []string `bson:"content"`
}

// GetCommuneSettings returns nil without error when the commune has no settings
func (c *settingDatabase) GetCommuneSettings(ctx context.Context, codeCommune string) (*models.CommuneSettings, error) {
	doc := &communeSettingDoc{}
	err := c.db.Collection(settingName).
		FindOne(ctx, bson.M{"name": models.CommuneSettingsKey(codeCommune)}).
		Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Content, nil
}

func (c *settingDatabase) SetCommuneSettings(ctx context.Context, codeCommune string, settings models.CommuneSettings) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	_, err := c.db.Collection(settingName).UpdateOne(ctx,
		bson.M{"name": models.CommuneSettingsKey(codeCommune)},
		bson.M{
			"$set":         bson.M{"content": settings, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (c *settingDatabase) DeleteCommuneSettings(ctx context.Context, codeCommune string) error {
	return c.db.Collection(settingName).
		DeleteOne(ctx, bson.M{"name": models.CommuneSettingsKey(codeCommune)})
}

func (c *settingDatabase) GetEnabledList(ctx context.Context, key models.EnabledListKey) ([]string, error) {
	doc := &enabledListDoc{}
	err := c.db.Collection(settingName).FindOne(ctx, bson.M{"name": string(key)}).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Content, nil
}

func (c *settingDatabase) IsInEnabledList(ctx context.Context, key models.EnabledListKey, id string) (bool, error) {
	count, err := c.db.Collection(settingName).
		CountDocuments(ctx, bson.M{"name": string(key), "content": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ToggleEnabledList flips the presence of id in the list and reports whether it
// ended up present. The removal only matches documents that still contain the
// id, so two concurrent toggles cannot both see the old state.
func (c *settingDatabase) ToggleEnabledList(ctx context.Context, key models.EnabledListKey, id string) (bool, error) {
	now := primitive.NewDateTimeFromTime(time.Now())

	matched, err := c.db.Collection(settingName).UpdateOne(ctx,
		bson.M{"name": string(key), "content": id},
		bson.M{
			"$pull": bson.M{"content": id},
			"$set":  bson.M{"updatedAt": now},
		},
	)
	if err != nil {
		return false, err
	}
	if matched > 0 {
		return false, nil
	}

	_, err = c.db.Collection(settingName).UpdateOne(ctx,
		bson.M{"name": string(key)},
		bson.M{
			"$addToSet":    bson.M{"content": id},
			"$set":         bson.M{"updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return true, nil
}
