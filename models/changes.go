package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Numero is a house number. Forms submit it either as a JSON number or as a
// numeric string, both normalize to the same integer.
type Numero int

// UnmarshalJSON coerces numeric strings to integers, already-integer input
// passes unchanged
func (n *Numero) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return fmt.Errorf("numero must be a number, got %s", string(b))
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("numero must be a number, got %s", string(b))
	}
	*n = Numero(v)
	return nil
}

// ChangeShape tags the concrete shape a change request must take
type ChangeShape string

// Change-request shapes
const (
	ChangeShapeNumero   ChangeShape = "NUMERO"
	ChangeShapeToponyme ChangeShape = "TOPONYME"
	ChangeShapeVoie     ChangeShape = "VOIE"
	ChangeShapeDelete   ChangeShape = "DELETE"
)

// ResolveChangeShape maps the two runtime discriminators of a create request to
// the change-request shape it must carry. Unmatched combinations are an error
// naming both discriminators.
func ResolveChangeShape(t SignalementType, locType ExistingLocationType) (ChangeShape, error) {
	switch t {
	case SignalementTypeLocationToCreate:
		return ChangeShapeNumero, nil
	case SignalementTypeLocationToDelete:
		return ChangeShapeDelete, nil
	case SignalementTypeLocationToUpdate:
		switch locType {
		case ExistingLocationNumero:
			return ChangeShapeNumero, nil
		case ExistingLocationToponyme:
			return ChangeShapeToponyme, nil
		case ExistingLocationVoie:
			return ChangeShapeVoie, nil
		}
	}
	return "", fmt.Errorf("no change-request shape for type %q and existing location type %q", t, locType)
}

// NumeroChanges is the change request for a house number (creation or update)
type NumeroChanges struct {
	Numero        Numero     `json:"numero" bson:"numero"`
	Suffixe       string     `json:"suffixe,omitempty" bson:"suffixe,omitempty"`
	NomVoie       string     `json:"nomVoie" bson:"nomVoie"`
	NomComplement string     `json:"nomComplement,omitempty" bson:"nomComplement,omitempty"`
	Parcelles     []string   `json:"parcelles" bson:"parcelles"`
	Positions     []Position `json:"positions" bson:"positions"`
	Comment       string     `json:"comment,omitempty" bson:"comment,omitempty"`
}

// ToponymeChanges is the change request for a named place
type ToponymeChanges struct {
	Nom       string     `json:"nom" bson:"nom"`
	Parcelles []string   `json:"parcelles" bson:"parcelles"`
	Positions []Position `json:"positions" bson:"positions"`
	Comment   string     `json:"comment,omitempty" bson:"comment,omitempty"`
}

// VoieChanges is the change request for a street
type VoieChanges struct {
	Nom     string `json:"nom" bson:"nom"`
	Comment string `json:"comment,omitempty" bson:"comment,omitempty"`
}

// DeleteChanges is the change request for a deletion
type DeleteChanges struct {
	Comment string `json:"comment" bson:"comment"`
}

// ChangesRequested is the stored form of the change request. The document is
// persisted as validated and normalized by the payload dispatcher; typed
// accessors decode it back into the shape matching the signalement.
type ChangesRequested map[string]interface{}

// AsNumero decodes the raw change request into the NUMERO shape
func (c ChangesRequested) AsNumero() (*NumeroChanges, error) {
	out := &NumeroChanges{}
	return out, remarshal(c, out)
}

// FirstPosition returns the first submitted position, nil when there is none
func (c ChangesRequested) FirstPosition() *Position {
	n, err := c.AsNumero()
	if err != nil || len(n.Positions) == 0 {
		return nil
	}
	return &n.Positions[0]
}

// RawChanges normalizes a typed change request into its stored form
func RawChanges(in interface{}) (ChangesRequested, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	out := ChangesRequested{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
