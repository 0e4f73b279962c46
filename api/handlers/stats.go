package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/adresse-io/signalement-api/api"
	"github.com/adresse-io/signalement-api/config"
	"github.com/adresse-io/signalement-api/databases"
	"github.com/adresse-io/signalement-api/models"
)

// Stats exposes aggregate counts over the signalement collection
type Stats struct {
	DB databases.SignalementDatabase
}

type statsGroup struct {
	ID struct {
		Name   string                   `bson:"name"`
		Status models.SignalementStatus `bson:"status"`
	} `bson:"_id"`
	Count int64 `bson:"count"`
}

func groupsToMap(groups []statsGroup) map[string]map[models.SignalementStatus]int64 {
	out := map[string]map[models.SignalementStatus]int64{}
	for _, g := range groups {
		if g.ID.Name == "" {
			continue
		}
		if out[g.ID.Name] == nil {
			out[g.ID.Name] = map[models.SignalementStatus]int64{}
		}
		out[g.ID.Name][g.ID.Status] += g.Count
	}
	return out
}

// GetStatsHandler returns per-source and per-client counts broken down by
// status, plus the overall total
func (s Stats) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	total, err := s.DB.Count(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("failed to count signalements", http.StatusInternalServerError, w, err)
		return
	}

	var bySource []statsGroup
	err = s.DB.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"deletedAt": nil}},
		{"$group": bson.M{
			"_id":   bson.M{"name": "$source.nom", "status": "$status"},
			"count": bson.M{"$sum": 1},
		}},
	}, &bySource)
	if err != nil {
		config.ErrorStatus("failed to aggregate by source", http.StatusInternalServerError, w, err)
		return
	}

	var byClient []statsGroup
	err = s.DB.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"deletedAt": nil, "processedBy": bson.M{"$ne": nil}}},
		{"$group": bson.M{
			"_id":   bson.M{"name": "$processedBy.nom", "status": "$status"},
			"count": bson.M{"$sum": 1},
		}},
	}, &byClient)
	if err != nil {
		config.ErrorStatus("failed to aggregate by client", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.SignalementStats{
		Total:       total,
		FromSources: groupsToMap(bySource),
		ProcessedBy: groupsToMap(byClient),
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
