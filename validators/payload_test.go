package validators

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adresse-io/signalement-api/models"
)

func location(t *testing.T, in interface{}) models.ExistingLocation {
	t.Helper()
	raw, err := models.ToRaw(in)
	assert.NoError(t, err)
	return raw
}

func TestChangesRequestedCreation(t *testing.T) {
	raw := json.RawMessage(`{
		"numero": 3,
		"suffixe": "bis",
		"nomVoie": "rue des Lilas",
		"parcelles": ["AB123456789012"],
		"positions": [{"point": {"type": "Point", "coordinates": [0.68, 47.39]}, "type": "entrée"}]
	}`)

	changes, err := ChangesRequested(models.SignalementTypeLocationToCreate, nil, raw)
	assert.NoError(t, err)
	assert.NotNil(t, changes)

	typed, err := changes.AsNumero()
	assert.NoError(t, err)
	assert.Equal(t, models.Numero(3), typed.Numero)
	assert.Equal(t, "rue des Lilas", typed.NomVoie)
	assert.Len(t, typed.Positions, 1)
}

func TestChangesRequestedCreationCoercesNumeroString(t *testing.T) {
	raw := json.RawMessage(`{
		"numero": "7",
		"nomVoie": "rue des Lilas",
		"parcelles": [],
		"positions": [{"point": {"type": "Point", "coordinates": [0.68, 47.39]}, "type": "entrée"}]
	}`)

	changes, err := ChangesRequested(models.SignalementTypeLocationToCreate, nil, raw)
	assert.NoError(t, err)

	typed, err := changes.AsNumero()
	assert.NoError(t, err)
	assert.Equal(t, models.Numero(7), typed.Numero)
}

func TestChangesRequestedCreationMissingFields(t *testing.T) {
	raw := json.RawMessage(`{
		"nomVoie": "rue des Lilas",
		"positions": [{"point": {"type": "Point", "coordinates": [0.68, 47.39]}, "type": "entrée"}]
	}`)

	_, err := ChangesRequested(models.SignalementTypeLocationToCreate, nil, raw)
	assert.Error(t, err)

	payloadErr, ok := err.(*PayloadError)
	assert.True(t, ok)
	assert.Contains(t, payloadErr.Errors, "numero:manquant")
	assert.Contains(t, payloadErr.Errors, "parcelles:manquant")
}

func TestChangesRequestedCreationNullParcelles(t *testing.T) {
	raw := json.RawMessage(`{
		"numero": 3,
		"nomVoie": "rue des Lilas",
		"parcelles": null,
		"positions": [{"point": {"type": "Point", "coordinates": [0.68, 47.39]}, "type": "entrée"}]
	}`)

	_, err := ChangesRequested(models.SignalementTypeLocationToCreate, nil, raw)
	assert.Error(t, err)

	payloadErr, ok := err.(*PayloadError)
	assert.True(t, ok)
	assert.Contains(t, payloadErr.Errors, "parcelles:manquant")
	assert.NotContains(t, payloadErr.Errors, "numero:manquant")
}

func TestChangesRequestedCreationErrors(t *testing.T) {
	raw := json.RawMessage(`{
		"numero": 123456,
		"parcelles": ["oops"],
		"positions": []
	}`)

	_, err := ChangesRequested(models.SignalementTypeLocationToCreate, nil, raw)
	assert.Error(t, err)

	payloadErr, ok := err.(*PayloadError)
	assert.True(t, ok)
	assert.Contains(t, payloadErr.Errors, "numero:numero_trop_grand")
	assert.Contains(t, payloadErr.Errors, "nomVoie:manquant")
	assert.Contains(t, payloadErr.Errors, "parcelles:parcelle_invalide:oops")
	assert.Contains(t, payloadErr.Errors, "positions:manquant")
}

func TestChangesRequestedUpdateVoie(t *testing.T) {
	loc := location(t, models.ExistingVoie{Type: models.ExistingLocationVoie, Nom: "rue Basse"})

	changes, err := ChangesRequested(models.SignalementTypeLocationToUpdate, loc, json.RawMessage(`{"nom": "rue Haute"}`))
	assert.NoError(t, err)
	assert.Equal(t, "rue Haute", changes["nom"])

	_, err = ChangesRequested(models.SignalementTypeLocationToUpdate, loc, json.RawMessage(`{"nom": "ab"}`))
	assert.Error(t, err)
	payloadErr, ok := err.(*PayloadError)
	assert.True(t, ok)
	assert.Contains(t, payloadErr.Errors, "nom:voie_nom_trop_court")
}

func TestChangesRequestedUpdateToponyme(t *testing.T) {
	loc := location(t, models.ExistingToponyme{Type: models.ExistingLocationToponyme, Nom: "Les Granges"})

	raw := json.RawMessage(`{
		"nom": "Les Grandes Granges",
		"parcelles": [],
		"positions": [{"point": {"type": "Point", "coordinates": [0.68, 47.39]}, "type": "segment"}]
	}`)
	changes, err := ChangesRequested(models.SignalementTypeLocationToUpdate, loc, raw)
	assert.NoError(t, err)
	assert.Equal(t, "Les Grandes Granges", changes["nom"])

	_, err = ChangesRequested(models.SignalementTypeLocationToUpdate, loc, json.RawMessage(`{"nom": "Les Grandes Granges", "positions": []}`))
	assert.Error(t, err)
	payloadErr, ok := err.(*PayloadError)
	assert.True(t, ok)
	assert.Contains(t, payloadErr.Errors, "parcelles:manquant")
}

func TestChangesRequestedDeletion(t *testing.T) {
	loc := location(t, models.ExistingVoie{Type: models.ExistingLocationVoie, Nom: "rue Basse"})

	changes, err := ChangesRequested(models.SignalementTypeLocationToDelete, loc, json.RawMessage(`{"comment": "doublon"}`))
	assert.NoError(t, err)
	assert.Equal(t, "doublon", changes["comment"])

	_, err = ChangesRequested(models.SignalementTypeLocationToDelete, loc, json.RawMessage(`{}`))
	assert.Error(t, err)
	payloadErr, ok := err.(*PayloadError)
	assert.True(t, ok)
	assert.Contains(t, payloadErr.Errors, "comment:manquant")
}

func TestChangesRequestedDispatchErrors(t *testing.T) {
	// missing body
	_, err := ChangesRequested(models.SignalementTypeLocationToCreate, nil, nil)
	assert.Error(t, err)

	_, err = ChangesRequested(models.SignalementTypeLocationToCreate, nil, json.RawMessage(`null`))
	assert.Error(t, err)

	// OTHER never resolves to a shape
	_, err = ChangesRequested(models.SignalementTypeOther, nil, json.RawMessage(`{"comment": "x"}`))
	assert.Error(t, err)

	// update without an existing location
	_, err = ChangesRequested(models.SignalementTypeLocationToUpdate, nil, json.RawMessage(`{"nom": "rue Haute"}`))
	assert.Error(t, err)
}
