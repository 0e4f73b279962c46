package models

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SignalementType discriminates what the reporter wants done
type SignalementType string

// Signalement types
const (
	SignalementTypeLocationToCreate SignalementType = "LOCATION_TO_CREATE"
	SignalementTypeLocationToUpdate SignalementType = "LOCATION_TO_UPDATE"
	SignalementTypeLocationToDelete SignalementType = "LOCATION_TO_DELETE"
	SignalementTypeOther            SignalementType = "OTHER"
)

// ValidSignalementType rejects unknown types at the API boundary
func ValidSignalementType(t SignalementType) error {
	switch t {
	case SignalementTypeLocationToCreate, SignalementTypeLocationToUpdate,
		SignalementTypeLocationToDelete, SignalementTypeOther:
		return nil
	}
	return fmt.Errorf("unknown signalement type %q", t)
}

// SignalementStatus is the lifecycle state of a signalement
type SignalementStatus string

// Lifecycle states. PENDING is initial, the rest are terminal.
const (
	SignalementStatusPending   SignalementStatus = "PENDING"
	SignalementStatusProcessed SignalementStatus = "PROCESSED"
	SignalementStatusIgnored   SignalementStatus = "IGNORED"
	SignalementStatusExpired   SignalementStatus = "EXPIRED"
)

// Signalement is an address-correction report filed against a commune
type Signalement struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	CreatedAt primitive.DateTime  `bson:"createdAt" json:"createdAt"`
	UpdatedAt primitive.DateTime  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt *primitive.DateTime `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`

	CodeCommune string `bson:"codeCommune" json:"codeCommune"`
	// NomCommune is resolved from the reference dataset at read time
	NomCommune string          `bson:"-" json:"nomCommune,omitempty"`
	Type       SignalementType `bson:"type" json:"type"`

	// Author is excluded from default reads, see SignalementDatabase
	Author *Author `bson:"author,omitempty" json:"author,omitempty"`

	ExistingLocation ExistingLocation `bson:"existingLocation,omitempty" json:"existingLocation,omitempty"`
	ChangesRequested ChangesRequested `bson:"changesRequested" json:"changesRequested"`

	Status          SignalementStatus `bson:"status" json:"status"`
	RejectionReason string            `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`

	// Point is derived once at creation, absent when no usable position was given
	Point *Point `bson:"point,omitempty" json:"point,omitempty"`

	Source      *SourceSummary `bson:"source" json:"source"`
	ProcessedBy *ClientSummary `bson:"processedBy,omitempty" json:"processedBy,omitempty"`
}

// DerivePoint computes the display geometry of a signalement: the first
// submitted position for a creation, the anchor position of the existing
// location otherwise. Positions with a missing coordinate are discarded.
func (s *Signalement) DerivePoint() *Point {
	var p *Point
	if s.Type == SignalementTypeLocationToCreate {
		if pos := s.ChangesRequested.FirstPosition(); pos != nil {
			p = &pos.Point
		}
	} else if pos := s.ExistingLocation.Position(); pos != nil {
		p = &pos.Point
	}

	if lon, lat, ok := p.LonLat(); ok {
		return NewPoint(lon, lat)
	}
	return nil
}

// formatAdresseLabel renders "<numero><suffixe?> <nomVoie>"
func formatAdresseLabel(numero Numero, nomVoie, suffixe string) string {
	if suffixe != "" {
		return fmt.Sprintf("%d %s %s", numero, suffixe, nomVoie)
	}
	return fmt.Sprintf("%d %s", numero, nomVoie)
}

// LocationLabel renders the human-readable address the signalement refers to,
// used in notification mails
func (s *Signalement) LocationLabel() string {
	if s.Type == SignalementTypeLocationToCreate {
		changes, err := s.ChangesRequested.AsNumero()
		if err != nil {
			return ""
		}
		return formatAdresseLabel(changes.Numero, changes.NomVoie, changes.Suffixe)
	}

	if s.ExistingLocation.LocationType() == ExistingLocationNumero {
		numero, err := s.ExistingLocation.AsNumero()
		if err != nil {
			return ""
		}
		nomVoie := ""
		if numero.Toponyme != nil {
			nomVoie = numero.Toponyme.Nom
		}
		return formatAdresseLabel(numero.Numero, nomVoie, numero.Suffixe)
	}

	voie, err := s.ExistingLocation.AsVoie()
	if err != nil {
		return ""
	}
	return voie.Nom
}

// LocationTypeLabel renders the kind of address object, used in notification mails
func (s *Signalement) LocationTypeLabel() string {
	if s.Type == SignalementTypeLocationToCreate {
		return "l'adresse"
	}

	switch s.ExistingLocation.LocationType() {
	case ExistingLocationNumero:
		return "l'adresse"
	case ExistingLocationVoie:
		return "la voie"
	case ExistingLocationToponyme:
		return "le lieu-dit"
	default:
		return ""
	}
}

// CreateSignalementInput is the create request body. ChangesRequested stays raw
// until the payload dispatcher has resolved which shape it must take.
type CreateSignalementInput struct {
	CodeCommune      string           `json:"codeCommune"`
	Type             SignalementType  `json:"type"`
	Author           *Author          `json:"author,omitempty"`
	ExistingLocation ExistingLocation `json:"existingLocation,omitempty"`
	ChangesRequested json.RawMessage  `json:"changesRequested"`
}

// UpdateSignalementInput is the close request body
type UpdateSignalementInput struct {
	Status          SignalementStatus `json:"status"`
	RejectionReason string            `json:"rejectionReason,omitempty"`
}

// PaginatedSignalements is the list response
type PaginatedSignalements struct {
	Data  []Signalement `json:"data"`
	Total int64         `json:"total"`
	Page  int64         `json:"page"`
	Limit int64         `json:"limit"`
}

// SignalementStats aggregates counts by source and by processing client
type SignalementStats struct {
	Total       int64                                  `json:"total"`
	FromSources map[string]map[SignalementStatus]int64 `json:"fromSources"`
	ProcessedBy map[string]map[SignalementStatus]int64 `json:"processedBy"`
}
