package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Setting is a generic name/content record used for per-commune configuration
// and the global allow-lists
type Setting struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CreatedAt primitive.DateTime `bson:"createdAt" json:"createdAt"`
	UpdatedAt primitive.DateTime `bson:"updatedAt" json:"updatedAt"`
	Name      string             `bson:"name" json:"name"`
	Content   interface{}        `bson:"content" json:"content"`
}

// EnabledListKey names a global allow-list setting
type EnabledListKey string

// The two well-known allow-lists gating LIGHT-mode submission
const (
	HarvesterSourcesEnabled   EnabledListKey = "harvester-sources-enabled"
	PublicationClientsEnabled EnabledListKey = "publication-clients-enabled"
)

// ValidEnabledListKey rejects unknown list names at the API boundary
func ValidEnabledListKey(k EnabledListKey) error {
	switch k {
	case HarvesterSourcesEnabled, PublicationClientsEnabled:
		return nil
	}
	return fmt.Errorf("unknown enabled list %q", k)
}

// CommuneSettingsKey is the setting name holding a commune's configuration
func CommuneSettingsKey(codeCommune string) string {
	return codeCommune + "-settings"
}

// SubmissionMode selects the submission form shown for an enabled commune
type SubmissionMode string

// Submission modes
const (
	SubmissionModeFull  SubmissionMode = "FULL"
	SubmissionModeLight SubmissionMode = "LIGHT"
)

// CommuneSettings is the typed content of a "<codeCommune>-settings" setting
type CommuneSettings struct {
	Disabled        bool           `bson:"disabled" json:"disabled"`
	Message         string         `bson:"message,omitempty" json:"message,omitempty"`
	Mode            SubmissionMode `bson:"mode,omitempty" json:"mode,omitempty"`
	FilteredSources []string       `bson:"filteredSources,omitempty" json:"filteredSources,omitempty"`
}

// HasFilteredSource reports whether the given source is blocked for the commune
func (c *CommuneSettings) HasFilteredSource(sourceID string) bool {
	if c == nil {
		return false
	}
	for _, id := range c.FilteredSources {
		if id == sourceID {
			return true
		}
	}
	return false
}

// CommuneStatus is the eligibility resolver output
type CommuneStatus struct {
	Disabled bool           `json:"disabled"`
	Message  string         `json:"message,omitempty"`
	Mode     SubmissionMode `json:"mode,omitempty"`
}
