package cog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCommune(t *testing.T) {
	commune := GetCommune("37003")
	assert.NotNil(t, commune)
	assert.Equal(t, "Ambillou", commune.Nom)
	assert.Equal(t, "37", commune.Departement)

	assert.Nil(t, GetCommune("99999"))
	assert.Nil(t, GetCommune(""))
}

func TestHasCommune(t *testing.T) {
	assert.True(t, HasCommune("75056"))
	assert.False(t, HasCommune("00000"))
}

func TestCommuneNom(t *testing.T) {
	assert.Equal(t, "Paris", CommuneNom("75056"))
	assert.Equal(t, "", CommuneNom("00000"))
}
