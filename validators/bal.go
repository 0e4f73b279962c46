package validators

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Field-syntax checks for the BAL address format. Each function returns a list
// of field-scoped error labels, empty when the value is acceptable.

var (
	suffixeRegexp  = regexp.MustCompile(`^[\da-z][\da-z_/]*$`)
	parcelleRegexp = regexp.MustCompile(`^[A-Z\d]{14}$`)
)

const (
	numeroMax     = 9999
	voieNomMinLen = 3
	voieNomMaxLen = 200
)

// Field validates a single value against the syntax rules of the given BAL
// field label. Unknown labels pass.
func Field(label, value string) []string {
	switch label {
	case "numero":
		return validateNumero(value)
	case "suffixe":
		return validateSuffixe(value)
	case "voie_nom":
		return validateVoieNom(value)
	case "cad_parcelles":
		return validateParcelles(strings.Split(value, "|"))
	}
	return nil
}

func validateNumero(value string) []string {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return []string{"numero_invalide"}
	}
	if n < 0 || n > numeroMax {
		return []string{"numero_trop_grand"}
	}
	return nil
}

func validateSuffixe(value string) []string {
	if !suffixeRegexp.MatchString(strings.ToLower(value)) {
		return []string{"suffixe_invalide"}
	}
	return nil
}

func validateVoieNom(value string) []string {
	var errs []string
	trimmed := strings.TrimSpace(value)
	if len([]rune(trimmed)) < voieNomMinLen {
		errs = append(errs, "voie_nom_trop_court")
	}
	if len([]rune(trimmed)) > voieNomMaxLen {
		errs = append(errs, "voie_nom_trop_long")
	}
	if strings.ContainsAny(value, "\r\n") {
		errs = append(errs, "caractere_invalide")
	}
	return errs
}

func validateParcelles(parcelles []string) []string {
	var errs []string
	for _, parcelle := range parcelles {
		if parcelle == "" {
			continue
		}
		if !parcelleRegexp.MatchString(parcelle) {
			errs = append(errs, fmt.Sprintf("parcelle_invalide:%s", parcelle))
		}
	}
	return errs
}
