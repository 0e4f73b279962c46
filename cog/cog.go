// Package cog resolves INSEE commune codes against the embedded COG dataset.
// The dataset ships with the binary; COG_COMMUNES_PATH can point to a newer
// extract without rebuilding.
package cog

import (
	_ "embed"
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"
)

//go:embed communes.json
var communesJSON []byte

// Commune is one entry of the official geographic code registry
type Commune struct {
	Code        string `json:"code"`
	Nom         string `json:"nom"`
	Departement string `json:"departement,omitempty"`
}

var (
	loadOnce sync.Once
	communes map[string]Commune
)

func load() {
	data := communesJSON
	if path := os.Getenv("COG_COMMUNES_PATH"); path != "" {
		override, err := os.ReadFile(path)
		if err != nil {
			zap.S().Warnw("failed to read COG override, using embedded dataset",
				"path", path,
				"error", err,
			)
		} else {
			data = override
		}
	}

	var list []Commune
	if err := json.Unmarshal(data, &list); err != nil {
		zap.S().Errorw("failed to parse COG dataset", "error", err)
		communes = map[string]Commune{}
		return
	}

	communes = make(map[string]Commune, len(list))
	for _, c := range list {
		communes[c.Code] = c
	}
}

// GetCommune returns the commune for the given INSEE code, nil when the code
// is absent from the registry
func GetCommune(code string) *Commune {
	loadOnce.Do(load)
	c, ok := communes[code]
	if !ok {
		return nil
	}
	return &c
}

// HasCommune reports whether the INSEE code exists in the registry
func HasCommune(code string) bool {
	return GetCommune(code) != nil
}

// CommuneNom returns the commune name, empty when the code is unknown
func CommuneNom(code string) string {
	c := GetCommune(code)
	if c == nil {
		return ""
	}
	return c.Nom
}
