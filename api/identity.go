package api

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adresse-io/signalement-api/captcha"
	"github.com/adresse-io/signalement-api/databases"
	"github.com/adresse-io/signalement-api/models"
)

// ResolveSource identifies the emitter of a submission. The two paths are
// mutually exclusive: a bearer token resolves a private source directly, while
// a sourceId query parameter resolves a public source and requires a valid
// captcha proof on the author. On the public path the captcha token is
// stripped from the author so it can never reach storage.
//
// On failure the returned status code is the one the handler must answer with.
func ResolveSource(ctx context.Context, db databases.SourceDatabase, verifier captcha.Verifier, token, sourceID string, author *models.Author) (*models.Source, int, error) {
	if token != "" {
		source, err := db.FindOne(ctx, bson.M{"token": token})
		if err != nil {
			return nil, http.StatusUnauthorized, errors.New("invalid source token")
		}
		return source, http.StatusOK, nil
	}

	if sourceID == "" {
		return nil, http.StatusBadRequest, errors.New("a source token or a sourceId is required")
	}
	oid, err := primitive.ObjectIDFromHex(sourceID)
	if err != nil {
		return nil, http.StatusBadRequest, errors.New("sourceId must be a valid id")
	}

	source, err := db.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, http.StatusNotFound, errors.New("source not found")
	}
	if source.Type != models.SourceTypePublic {
		return nil, http.StatusBadRequest, errors.New("source is not public")
	}

	if author == nil || author.CaptchaToken == "" {
		return nil, http.StatusPreconditionFailed, errors.New("a captcha token is required")
	}
	ok, err := verifier.Verify(ctx, author.CaptchaToken)
	if err != nil || !ok {
		return nil, http.StatusUnauthorized, errors.New("invalid captcha token")
	}
	author.CaptchaToken = ""

	return source, http.StatusOK, nil
}

// ResolveClient identifies the caller of a moderation operation from its
// bearer token. An absent token is an anonymous caller, not an error.
func ResolveClient(ctx context.Context, db databases.ClientDatabase, token string) (*models.Client, int, error) {
	if token == "" {
		return nil, http.StatusOK, nil
	}
	client, err := db.FindOne(ctx, bson.M{"token": token})
	if err != nil {
		return nil, http.StatusUnauthorized, errors.New("invalid client token")
	}
	return client, http.StatusOK, nil
}
