package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldNumero(t *testing.T) {
	assert.Empty(t, Field("numero", "1"))
	assert.Empty(t, Field("numero", "9999"))
	assert.Equal(t, []string{"numero_invalide"}, Field("numero", "abc"))
	assert.Equal(t, []string{"numero_trop_grand"}, Field("numero", "10000"))
}

func TestFieldSuffixe(t *testing.T) {
	assert.Empty(t, Field("suffixe", "bis"))
	assert.Empty(t, Field("suffixe", "TER"))
	assert.Empty(t, Field("suffixe", "2"))
	assert.Equal(t, []string{"suffixe_invalide"}, Field("suffixe", "-bis"))
	assert.Equal(t, []string{"suffixe_invalide"}, Field("suffixe", ""))
}

func TestFieldVoieNom(t *testing.T) {
	assert.Empty(t, Field("voie_nom", "rue des Lilas"))
	assert.Equal(t, []string{"voie_nom_trop_court"}, Field("voie_nom", "ab"))
	assert.Equal(t, []string{"voie_nom_trop_long"}, Field("voie_nom", strings.Repeat("a", 201)))
	assert.Equal(t, []string{"caractere_invalide"}, Field("voie_nom", "rue des\nLilas"))
}

func TestFieldParcelles(t *testing.T) {
	assert.Empty(t, Field("cad_parcelles", "AB123456789012"))
	assert.Empty(t, Field("cad_parcelles", "AB123456789012|CD123456789012"))
	assert.Empty(t, Field("cad_parcelles", ""))
	assert.Equal(t, []string{"parcelle_invalide:nope"}, Field("cad_parcelles", "nope"))
}

func TestFieldUnknownLabel(t *testing.T) {
	assert.Empty(t, Field("whatever", "value"))
}
