package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adresse-io/signalement-api/api"
	captchaMocks "github.com/adresse-io/signalement-api/captcha/mocks"
	dbMocks "github.com/adresse-io/signalement-api/databases/mocks"
	"github.com/adresse-io/signalement-api/models"
)

func TestResolveSourcePrivateToken(t *testing.T) {
	db := &dbMocks.SourceDatabase{}
	source := &models.Source{ID: primitive.NewObjectID(), Nom: "Partenaire", Type: models.SourceTypePrivate, Token: "s3cret"}
	db.On("FindOne", mock.Anything, bson.M{"token": "s3cret"}).Return(source, nil)

	resolved, code, err := api.ResolveSource(context.Background(), db, nil, "s3cret", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, source.ID, resolved.ID)
}

func TestResolveSourceInvalidToken(t *testing.T) {
	db := &dbMocks.SourceDatabase{}
	db.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("no documents"))

	_, code, err := api.ResolveSource(context.Background(), db, nil, "wrong", "", nil)
	assert.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestResolveSourceRequiresTokenOrID(t *testing.T) {
	_, code, err := api.ResolveSource(context.Background(), &dbMocks.SourceDatabase{}, nil, "", "", nil)
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestResolveSourcePublicWithCaptcha(t *testing.T) {
	db := &dbMocks.SourceDatabase{}
	source := &models.Source{ID: primitive.NewObjectID(), Nom: "Widget", Type: models.SourceTypePublic}
	db.On("FindOne", mock.Anything, mock.Anything).Return(source, nil)

	verifier := &captchaMocks.Verifier{}
	verifier.On("Verify", mock.Anything, "proof").Return(true, nil)

	author := &models.Author{Email: "jane@exemple.fr", CaptchaToken: "proof"}
	resolved, code, err := api.ResolveSource(context.Background(), db, verifier, "", source.ID.Hex(), author)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, source.ID, resolved.ID)
	assert.Empty(t, author.CaptchaToken)
}

func TestResolveSourcePublicRejectsBadCaptcha(t *testing.T) {
	db := &dbMocks.SourceDatabase{}
	source := &models.Source{ID: primitive.NewObjectID(), Nom: "Widget", Type: models.SourceTypePublic}
	db.On("FindOne", mock.Anything, mock.Anything).Return(source, nil)

	verifier := &captchaMocks.Verifier{}
	verifier.On("Verify", mock.Anything, "proof").Return(false, nil)

	author := &models.Author{CaptchaToken: "proof"}
	_, code, err := api.ResolveSource(context.Background(), db, verifier, "", source.ID.Hex(), author)
	assert.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestResolveSourcePublicRequiresCaptcha(t *testing.T) {
	db := &dbMocks.SourceDatabase{}
	source := &models.Source{ID: primitive.NewObjectID(), Nom: "Widget", Type: models.SourceTypePublic}
	db.On("FindOne", mock.Anything, mock.Anything).Return(source, nil)

	_, code, err := api.ResolveSource(context.Background(), db, nil, "", source.ID.Hex(), nil)
	assert.Error(t, err)
	assert.Equal(t, http.StatusPreconditionFailed, code)
}

func TestResolveSourceRejectsPrivateOnPublicPath(t *testing.T) {
	db := &dbMocks.SourceDatabase{}
	source := &models.Source{ID: primitive.NewObjectID(), Nom: "Partenaire", Type: models.SourceTypePrivate}
	db.On("FindOne", mock.Anything, mock.Anything).Return(source, nil)

	_, code, err := api.ResolveSource(context.Background(), db, nil, "", source.ID.Hex(), nil)
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestResolveClient(t *testing.T) {
	db := &dbMocks.ClientDatabase{}
	client := &models.Client{ID: primitive.NewObjectID(), Nom: "Mes Adresses", Token: "client-token"}
	db.On("FindOne", mock.Anything, bson.M{"token": "client-token"}).Return(client, nil)

	resolved, _, err := api.ResolveClient(context.Background(), db, "client-token")
	assert.NoError(t, err)
	assert.Equal(t, client.ID, resolved.ID)

	// no token means anonymous, not an error
	anonymous, _, err := api.ResolveClient(context.Background(), db, "")
	assert.NoError(t, err)
	assert.Nil(t, anonymous)
}

func TestResolveClientInvalidToken(t *testing.T) {
	db := &dbMocks.ClientDatabase{}
	db.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("no documents"))

	_, code, err := api.ResolveClient(context.Background(), db, "wrong")
	assert.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)
}
