package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommuneSettingsKey(t *testing.T) {
	assert.Equal(t, "37003-settings", CommuneSettingsKey("37003"))
}

func TestValidEnabledListKey(t *testing.T) {
	assert.NoError(t, ValidEnabledListKey(HarvesterSourcesEnabled))
	assert.NoError(t, ValidEnabledListKey(PublicationClientsEnabled))
	assert.Error(t, ValidEnabledListKey("random-list"))
}

func TestHasFilteredSource(t *testing.T) {
	settings := &CommuneSettings{FilteredSources: []string{"abc", "def"}}
	assert.True(t, settings.HasFilteredSource("abc"))
	assert.False(t, settings.HasFilteredSource("xyz"))

	var nilSettings *CommuneSettings
	assert.False(t, nilSettings.HasFilteredSource("abc"))
}
