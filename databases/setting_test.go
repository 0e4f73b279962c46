package databases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adresse-io/signalement-api/databases"
	"github.com/adresse-io/signalement-api/databases/mocks"
	"github.com/adresse-io/signalement-api/models"
)

func settingFixture() (*mocks.CollectionHelper, databases.SettingDatabase) {
	coll := &mocks.CollectionHelper{}
	db := &mocks.DatabaseHelper{}
	db.On("Collection", "settings").Return(coll)
	return coll, databases.NewSettingDatabase(db)
}

func TestGetCommuneSettingsMissing(t *testing.T) {
	coll, settingDB := settingFixture()

	result := &mocks.SingleResultHelper{}
	result.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	coll.On("FindOne", mock.Anything, bson.M{"name": "37003-settings"}).Return(result)

	settings, err := settingDB.GetCommuneSettings(context.Background(), "37003")
	assert.NoError(t, err)
	assert.Nil(t, settings)
}

func TestGetEnabledListMissing(t *testing.T) {
	coll, settingDB := settingFixture()

	result := &mocks.SingleResultHelper{}
	result.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	coll.On("FindOne", mock.Anything, bson.M{"name": "harvester-sources-enabled"}).Return(result)

	list, err := settingDB.GetEnabledList(context.Background(), models.HarvesterSourcesEnabled)
	assert.NoError(t, err)
	assert.Equal(t, []string{}, list)
}

func TestToggleEnabledListRemoves(t *testing.T) {
	coll, settingDB := settingFixture()

	// the conditional pull matches, the id was present
	coll.On("UpdateOne", mock.Anything,
		bson.M{"name": "harvester-sources-enabled", "content": "moissonneur-1"},
		mock.Anything).Return(int64(1), nil)

	enabled, err := settingDB.ToggleEnabledList(context.Background(), models.HarvesterSourcesEnabled, "moissonneur-1")
	assert.NoError(t, err)
	assert.False(t, enabled)
	coll.AssertNumberOfCalls(t, "UpdateOne", 1)
}

func TestToggleEnabledListAdds(t *testing.T) {
	coll, settingDB := settingFixture()

	coll.On("UpdateOne", mock.Anything,
		bson.M{"name": "harvester-sources-enabled", "content": "moissonneur-1"},
		mock.Anything).Return(int64(0), nil)
	coll.On("UpdateOne", mock.Anything,
		bson.M{"name": "harvester-sources-enabled"},
		mock.Anything, mock.Anything).Return(int64(0), nil)

	enabled, err := settingDB.ToggleEnabledList(context.Background(), models.HarvesterSourcesEnabled, "moissonneur-1")
	assert.NoError(t, err)
	assert.True(t, enabled)
	coll.AssertNumberOfCalls(t, "UpdateOne", 2)
}

func TestIsInEnabledList(t *testing.T) {
	coll, settingDB := settingFixture()
	coll.On("CountDocuments", mock.Anything,
		bson.M{"name": "publication-clients-enabled", "content": "client-api-1"}).Return(int64(1), nil)

	enabled, err := settingDB.IsInEnabledList(context.Background(), models.PublicationClientsEnabled, "client-api-1")
	assert.NoError(t, err)
	assert.True(t, enabled)
}
