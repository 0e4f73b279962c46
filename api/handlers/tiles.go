package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/adresse-io/signalement-api/api"
	"github.com/adresse-io/signalement-api/config"
	"github.com/adresse-io/signalement-api/databases"
)

// Tiles serves signalements as Mapbox vector tiles for map display
type Tiles struct {
	DB databases.SignalementDatabase
}

const (
	tileLayerName = "signalements"
	maxTileZoom   = 22
	// tileFeatureLimit caps one tile, low-zoom tiles are truncated rather
	// than unbounded
	tileFeatureLimit = int64(10000)
)

// GetTileHandler renders one z/x/y tile containing the signalements whose
// point falls inside the tile bounds. Signalements without a point never
// appear on the map.
func (t Tiles) GetTileHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	vars := mux.Vars(r)
	z, errZ := strconv.ParseUint(vars["z"], 10, 32)
	x, errX := strconv.ParseUint(vars["x"], 10, 32)
	y, errY := strconv.ParseUint(vars["y"], 10, 32)
	if errZ != nil || errX != nil || errY != nil || z > maxTileZoom {
		config.ErrorStatus("invalid tile coordinates", http.StatusBadRequest, w,
			fmt.Errorf("z=%s x=%s y=%s", vars["z"], vars["x"], vars["y"]))
		return
	}

	tile := maptile.New(uint32(x), uint32(y), maptile.Zoom(z))
	bound := tile.Bound()

	filter := bson.M{
		"point.type":          "Point",
		"point.coordinates.0": bson.M{"$gte": bound.Min.Lon(), "$lte": bound.Max.Lon()},
		"point.coordinates.1": bson.M{"$gte": bound.Min.Lat(), "$lte": bound.Max.Lat()},
	}
	if statuses := r.URL.Query()["status"]; len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}

	signalements, err := t.DB.Find(ctx, filter, databases.PaginatedOpts(tileFeatureLimit, 1))
	if err != nil {
		config.ErrorStatus("failed to get signalements", http.StatusInternalServerError, w, err)
		return
	}

	fc := geojson.NewFeatureCollection()
	for i := range signalements {
		lon, lat, ok := signalements[i].Point.LonLat()
		if !ok {
			continue
		}
		feature := geojson.NewFeature(orb.Point{lon, lat})
		feature.Properties = geojson.Properties{
			"id":          signalements[i].ID.Hex(),
			"type":        string(signalements[i].Type),
			"status":      string(signalements[i].Status),
			"codeCommune": signalements[i].CodeCommune,
		}
		fc.Append(feature)
	}

	layers := mvt.NewLayers(map[string]*geojson.FeatureCollection{tileLayerName: fc})
	layers.ProjectToTile(tile)

	data, err := mvt.Marshal(layers)
	if err != nil {
		config.ErrorStatus("failed to encode tile", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.mapbox-vector-tile")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
