package validators

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/adresse-io/signalement-api/models"
)

// PayloadError aggregates the field-scoped errors of a change-request body
type PayloadError struct {
	Errors []string
}

func (e *PayloadError) Error() string {
	return strings.Join(e.Errors, ", ")
}

type errorList struct {
	errors []string
}

func (l *errorList) add(field string, errs ...string) {
	for _, err := range errs {
		l.errors = append(l.errors, fmt.Sprintf("%s:%s", field, err))
	}
}

func (l *errorList) addField(field, label, value string) {
	l.add(field, Field(label, value)...)
}

// ChangesRequested resolves which shape the change-request body must take from
// the signalement type and the existing-location type, decodes it, validates
// its fields and returns the normalized stored form.
func ChangesRequested(t models.SignalementType, location models.ExistingLocation, raw json.RawMessage) (models.ChangesRequested, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, &PayloadError{Errors: []string{"changesRequested:manquant"}}
	}

	shape, err := models.ResolveChangeShape(t, location.LocationType())
	if err != nil {
		return nil, &PayloadError{Errors: []string{"changesRequested:" + err.Error()}}
	}

	switch shape {
	case models.ChangeShapeNumero:
		return validateNumeroChanges(raw)
	case models.ChangeShapeToponyme:
		return validateToponymeChanges(raw)
	case models.ChangeShapeVoie:
		return validateVoieChanges(raw)
	default:
		return validateDeleteChanges(raw)
	}
}

// missing reports whether a required key is absent or JSON null in the
// submitted body
func missing(fields map[string]json.RawMessage, key string) bool {
	v, ok := fields[key]
	return !ok || string(v) == "null"
}

func validateNumeroChanges(raw json.RawMessage) (models.ChangesRequested, error) {
	changes := models.NumeroChanges{}
	if err := json.Unmarshal(raw, &changes); err != nil {
		return nil, &PayloadError{Errors: []string{"changesRequested:" + err.Error()}}
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &PayloadError{Errors: []string{"changesRequested:" + err.Error()}}
	}

	errs := &errorList{}
	if missing(fields, "numero") {
		errs.add("numero", "manquant")
	} else {
		errs.addField("numero", "numero", strconv.Itoa(int(changes.Numero)))
	}
	if changes.Suffixe != "" {
		errs.addField("suffixe", "suffixe", changes.Suffixe)
	}
	if changes.NomVoie == "" {
		errs.add("nomVoie", "manquant")
	} else {
		errs.addField("nomVoie", "voie_nom", changes.NomVoie)
	}
	if changes.NomComplement != "" {
		errs.addField("nomComplement", "voie_nom", changes.NomComplement)
	}
	if missing(fields, "parcelles") {
		errs.add("parcelles", "manquant")
	} else {
		errs.addField("parcelles", "cad_parcelles", strings.Join(changes.Parcelles, "|"))
	}
	if len(changes.Positions) == 0 {
		errs.add("positions", "manquant")
	}
	if len(errs.errors) > 0 {
		return nil, &PayloadError{Errors: errs.errors}
	}
	return models.RawChanges(changes)
}

func validateToponymeChanges(raw json.RawMessage) (models.ChangesRequested, error) {
	changes := models.ToponymeChanges{}
	if err := json.Unmarshal(raw, &changes); err != nil {
		return nil, &PayloadError{Errors: []string{"changesRequested:" + err.Error()}}
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &PayloadError{Errors: []string{"changesRequested:" + err.Error()}}
	}

	errs := &errorList{}
	if changes.Nom == "" {
		errs.add("nom", "manquant")
	} else {
		errs.addField("nom", "voie_nom", changes.Nom)
	}
	if missing(fields, "parcelles") {
		errs.add("parcelles", "manquant")
	} else {
		errs.addField("parcelles", "cad_parcelles", strings.Join(changes.Parcelles, "|"))
	}
	if len(changes.Positions) == 0 {
		errs.add("positions", "manquant")
	}
	if len(errs.errors) > 0 {
		return nil, &PayloadError{Errors: errs.errors}
	}
	return models.RawChanges(changes)
}

func validateVoieChanges(raw json.RawMessage) (models.ChangesRequested, error) {
	changes := models.VoieChanges{}
	if err := json.Unmarshal(raw, &changes); err != nil {
		return nil, &PayloadError{Errors: []string{"changesRequested:" + err.Error()}}
	}

	errs := &errorList{}
	if changes.Nom == "" {
		errs.add("nom", "manquant")
	} else {
		errs.addField("nom", "voie_nom", changes.Nom)
	}
	if len(errs.errors) > 0 {
		return nil, &PayloadError{Errors: errs.errors}
	}
	return models.RawChanges(changes)
}

func validateDeleteChanges(raw json.RawMessage) (models.ChangesRequested, error) {
	changes := models.DeleteChanges{}
	if err := json.Unmarshal(raw, &changes); err != nil {
		return nil, &PayloadError{Errors: []string{"changesRequested:" + err.Error()}}
	}

	if changes.Comment == "" {
		return nil, &PayloadError{Errors: []string{"comment:manquant"}}
	}
	return models.RawChanges(changes)
}
