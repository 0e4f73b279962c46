package models

import "encoding/json"

// ExistingLocationType discriminates the address object a signalement refers to
type ExistingLocationType string

// Existing location variants
const (
	ExistingLocationNumero   ExistingLocationType = "NUMERO"
	ExistingLocationVoie     ExistingLocationType = "VOIE"
	ExistingLocationToponyme ExistingLocationType = "TOPONYME"
)

// ExistingLocation is the stored form of the tagged existing-location variant.
// The raw document is kept as submitted; typed accessors below give access to
// the concrete shape selected by the "type" discriminant.
type ExistingLocation map[string]interface{}

// LocationType returns the variant discriminant, empty when absent
func (l ExistingLocation) LocationType() ExistingLocationType {
	if l == nil {
		return ""
	}
	t, _ := l["type"].(string)
	return ExistingLocationType(t)
}

// ExistingVoie is a street the signalement refers to
type ExistingVoie struct {
	Type  ExistingLocationType `json:"type" bson:"type"`
	BanID string               `json:"banId,omitempty" bson:"banId,omitempty"`
	Nom   string               `json:"nom" bson:"nom"`
}

// ExistingToponyme is a named place the signalement refers to
type ExistingToponyme struct {
	Type      ExistingLocationType `json:"type" bson:"type"`
	BanID     string               `json:"banId,omitempty" bson:"banId,omitempty"`
	Nom       string               `json:"nom" bson:"nom"`
	Position  *Position            `json:"position,omitempty" bson:"position,omitempty"`
	Parcelles []string             `json:"parcelles,omitempty" bson:"parcelles,omitempty"`
}

// ExistingNumero is a house number the signalement refers to
type ExistingNumero struct {
	Type          ExistingLocationType `json:"type" bson:"type"`
	BanID         string               `json:"banId,omitempty" bson:"banId,omitempty"`
	Numero        Numero               `json:"numero" bson:"numero"`
	Suffixe       string               `json:"suffixe,omitempty" bson:"suffixe,omitempty"`
	Position      *Position            `json:"position,omitempty" bson:"position,omitempty"`
	Parcelles     []string             `json:"parcelles,omitempty" bson:"parcelles,omitempty"`
	Toponyme      *ExistingVoie        `json:"toponyme,omitempty" bson:"toponyme,omitempty"`
	NomComplement string               `json:"nomComplement,omitempty" bson:"nomComplement,omitempty"`
}

// AsNumero decodes the raw location into the NUMERO shape
func (l ExistingLocation) AsNumero() (*ExistingNumero, error) {
	out := &ExistingNumero{}
	return out, remarshal(l, out)
}

// AsVoie decodes the raw location into the VOIE shape
func (l ExistingLocation) AsVoie() (*ExistingVoie, error) {
	out := &ExistingVoie{}
	return out, remarshal(l, out)
}

// AsToponyme decodes the raw location into the TOPONYME shape
func (l ExistingLocation) AsToponyme() (*ExistingToponyme, error) {
	out := &ExistingToponyme{}
	return out, remarshal(l, out)
}

// Position returns the anchor position of the location, nil for VOIE
func (l ExistingLocation) Position() *Position {
	switch l.LocationType() {
	case ExistingLocationNumero:
		n, err := l.AsNumero()
		if err != nil {
			return nil
		}
		return n.Position
	case ExistingLocationToponyme:
		t, err := l.AsToponyme()
		if err != nil {
			return nil
		}
		return t.Position
	default:
		return nil
	}
}

// remarshal converts between the raw map form and a typed variant through JSON,
// which is the encoding both forms are defined against
func remarshal(in, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// ToRaw converts a typed value to its raw map form
func ToRaw(in interface{}) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := remarshal(in, &out); err != nil {
		return nil, err
	}
	return out, nil
}
