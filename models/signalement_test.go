package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustRaw(t *testing.T, in interface{}) ChangesRequested {
	t.Helper()
	raw, err := RawChanges(in)
	assert.NoError(t, err)
	return raw
}

func mustLocation(t *testing.T, in interface{}) ExistingLocation {
	t.Helper()
	raw, err := ToRaw(in)
	assert.NoError(t, err)
	return raw
}

func TestDerivePointFromCreation(t *testing.T) {
	s := Signalement{
		Type: SignalementTypeLocationToCreate,
		ChangesRequested: mustRaw(t, NumeroChanges{
			Numero:  3,
			NomVoie: "rue des Lilas",
			Positions: []Position{
				{Point: *NewPoint(0.68, 47.39), Type: PositionEntree},
				{Point: *NewPoint(0.70, 47.40), Type: PositionBatiment},
			},
		}),
	}

	p := s.DerivePoint()
	assert.NotNil(t, p)
	lon, lat, ok := p.LonLat()
	assert.True(t, ok)
	assert.Equal(t, 0.68, lon)
	assert.Equal(t, 47.39, lat)
}

func TestDerivePointFromExistingLocation(t *testing.T) {
	s := Signalement{
		Type: SignalementTypeLocationToUpdate,
		ExistingLocation: mustLocation(t, ExistingNumero{
			Type:     ExistingLocationNumero,
			Numero:   12,
			Position: &Position{Point: *NewPoint(2.35, 48.85), Type: PositionEntree},
		}),
		ChangesRequested: mustRaw(t, NumeroChanges{Numero: 12, NomVoie: "rue de Rivoli"}),
	}

	p := s.DerivePoint()
	assert.NotNil(t, p)
	lon, lat, ok := p.LonLat()
	assert.True(t, ok)
	assert.Equal(t, 2.35, lon)
	assert.Equal(t, 48.85, lat)
}

func TestDerivePointDiscardsNullCoordinate(t *testing.T) {
	var changes ChangesRequested
	err := json.Unmarshal([]byte(`{
		"numero": 3,
		"nomVoie": "rue des Lilas",
		"positions": [{"point": {"type": "Point", "coordinates": [null, 47.39]}, "type": "entrée"}]
	}`), &changes)
	assert.NoError(t, err)

	s := Signalement{Type: SignalementTypeLocationToCreate, ChangesRequested: changes}
	assert.Nil(t, s.DerivePoint())
}

func TestDerivePointWithoutPositions(t *testing.T) {
	s := Signalement{
		Type:             SignalementTypeLocationToCreate,
		ChangesRequested: mustRaw(t, NumeroChanges{Numero: 3, NomVoie: "rue des Lilas"}),
	}
	assert.Nil(t, s.DerivePoint())

	voie := Signalement{
		Type:             SignalementTypeLocationToUpdate,
		ExistingLocation: mustLocation(t, ExistingVoie{Type: ExistingLocationVoie, Nom: "rue des Lilas"}),
	}
	assert.Nil(t, voie.DerivePoint())
}

func TestLocationLabel(t *testing.T) {
	creation := Signalement{
		Type:             SignalementTypeLocationToCreate,
		ChangesRequested: mustRaw(t, NumeroChanges{Numero: 3, Suffixe: "bis", NomVoie: "rue des Lilas"}),
	}
	assert.Equal(t, "3 bis rue des Lilas", creation.LocationLabel())
	assert.Equal(t, "l'adresse", creation.LocationTypeLabel())

	update := Signalement{
		Type: SignalementTypeLocationToUpdate,
		ExistingLocation: mustLocation(t, ExistingNumero{
			Type:     ExistingLocationNumero,
			Numero:   7,
			Toponyme: &ExistingVoie{Type: ExistingLocationVoie, Nom: "avenue de la Gare"},
		}),
	}
	assert.Equal(t, "7 avenue de la Gare", update.LocationLabel())
	assert.Equal(t, "l'adresse", update.LocationTypeLabel())

	voie := Signalement{
		Type:             SignalementTypeLocationToDelete,
		ExistingLocation: mustLocation(t, ExistingVoie{Type: ExistingLocationVoie, Nom: "rue Basse"}),
	}
	assert.Equal(t, "rue Basse", voie.LocationLabel())
	assert.Equal(t, "la voie", voie.LocationTypeLabel())

	toponyme := Signalement{
		Type:             SignalementTypeLocationToUpdate,
		ExistingLocation: mustLocation(t, ExistingToponyme{Type: ExistingLocationToponyme, Nom: "Les Granges"}),
	}
	assert.Equal(t, "le lieu-dit", toponyme.LocationTypeLabel())
}

func TestResolveChangeShape(t *testing.T) {
	tests := []struct {
		name     string
		sigType  SignalementType
		locType  ExistingLocationType
		expected ChangeShape
		wantErr  bool
	}{
		{"creation", SignalementTypeLocationToCreate, "", ChangeShapeNumero, false},
		{"deletion", SignalementTypeLocationToDelete, ExistingLocationVoie, ChangeShapeDelete, false},
		{"update numero", SignalementTypeLocationToUpdate, ExistingLocationNumero, ChangeShapeNumero, false},
		{"update toponyme", SignalementTypeLocationToUpdate, ExistingLocationToponyme, ChangeShapeToponyme, false},
		{"update voie", SignalementTypeLocationToUpdate, ExistingLocationVoie, ChangeShapeVoie, false},
		{"update without location", SignalementTypeLocationToUpdate, "", "", true},
		{"other", SignalementTypeOther, ExistingLocationNumero, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := ResolveChangeShape(tt.sigType, tt.locType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, shape)
		})
	}
}

func TestNumeroCoercion(t *testing.T) {
	var asNumber NumeroChanges
	assert.NoError(t, json.Unmarshal([]byte(`{"numero": 12}`), &asNumber))
	assert.Equal(t, Numero(12), asNumber.Numero)

	var asString NumeroChanges
	assert.NoError(t, json.Unmarshal([]byte(`{"numero": "12"}`), &asString))
	assert.Equal(t, Numero(12), asString.Numero)

	var invalid NumeroChanges
	assert.Error(t, json.Unmarshal([]byte(`{"numero": "douze"}`), &invalid))
	assert.Error(t, json.Unmarshal([]byte(`{"numero": null}`), &invalid))
}

func TestValidSignalementType(t *testing.T) {
	assert.NoError(t, ValidSignalementType(SignalementTypeLocationToCreate))
	assert.NoError(t, ValidSignalementType(SignalementTypeOther))
	assert.Error(t, ValidSignalementType("SOMETHING_ELSE"))
}
