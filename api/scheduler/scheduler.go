// Package scheduler runs the recurring maintenance of the signalement
// collection: the weekly pending report, the optional commune purge and the
// expiration of signalements whose commune left the COG registry.
package scheduler

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/adresse-io/signalement-api/cog"
	"github.com/adresse-io/signalement-api/databases"
	"github.com/adresse-io/signalement-api/mailer"
	"github.com/adresse-io/signalement-api/models"
	html "github.com/adresse-io/signalement-api/templates/html"
)

const (
	weeklyReportSpec = "0 10 * * 2"
	purgeSpec        = "0 4 * * 1"
	expireBatchSize  = int64(100)
	jobTimeout       = 5 * time.Minute
)

// Scheduler owns the cron runner and the dependencies its jobs need
type Scheduler struct {
	cron          *cron.Cron
	SignalementDB databases.SignalementDatabase
	Mailer        mailer.Service
}

// New builds a scheduler, jobs are registered by Start
func New(signalementDB databases.SignalementDatabase, mailService mailer.Service) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		SignalementDB: signalementDB,
		Mailer:        mailService,
	}
}

// Start registers the recurring jobs and starts the cron runner. The commune
// purge only runs when RESET_COMMUNE names a commune, demo environments use it
// to wipe their sandbox commune every week.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(weeklyReportSpec, s.weeklyPendingReport); err != nil {
		return err
	}

	if code := os.Getenv("RESET_COMMUNE"); code != "" {
		_, err := s.cron.AddFunc(purgeSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			deleted, err := s.PurgeCommune(ctx, code)
			if err != nil {
				zap.S().Errorw("failed to purge commune", "codeCommune", code, "error", err)
				return
			}
			zap.S().Infow("purged commune", "codeCommune", code, "deleted", deleted)
		})
		if err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

// Stop halts the cron runner, running jobs finish
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// PurgeCommune soft deletes every signalement of a commune
func (s *Scheduler) PurgeCommune(ctx context.Context, codeCommune string) (int64, error) {
	return s.SignalementDB.SoftDeleteMany(ctx, bson.M{"codeCommune": codeCommune})
}

// ExpireOrphanedSignalements marks EXPIRED every pending signalement whose
// commune no longer exists in the COG registry, typically after a yearly COG
// release merged communes. The scan completes before any write so paging is
// stable, and rerunning is a no-op.
func (s *Scheduler) ExpireOrphanedSignalements(ctx context.Context) (int64, error) {
	var orphaned []primitive.ObjectID
	for page := int64(1); ; page++ {
		batch, err := s.SignalementDB.Find(ctx,
			bson.M{"status": models.SignalementStatusPending},
			databases.PaginatedOpts(expireBatchSize, page),
		)
		if err != nil {
			return 0, err
		}
		for i := range batch {
			if cog.GetCommune(batch[i].CodeCommune) == nil {
				orphaned = append(orphaned, batch[i].ID)
			}
		}
		if int64(len(batch)) < expireBatchSize {
			break
		}
	}

	var expired int64
	now := primitive.NewDateTimeFromTime(time.Now())
	for _, id := range orphaned {
		matched, err := s.SignalementDB.UpdateOne(ctx,
			bson.M{"_id": id, "status": models.SignalementStatusPending},
			bson.M{"$set": bson.M{
				"status":    models.SignalementStatusExpired,
				"updatedAt": now,
			}},
		)
		if err != nil {
			return expired, err
		}
		expired += matched
	}

	zap.S().Infow("expired orphaned signalements", "count", expired)
	return expired, nil
}

type communeCount struct {
	CodeCommune string `bson:"_id"`
	Count       int64  `bson:"count"`
	Nom         string `bson:"-"`
}

// weeklyPendingReport mails the pending backlog broken down by commune to the
// addresses in WEEKLY_REPORT_RECIPIENTS
func (s *Scheduler) weeklyPendingReport() {
	recipients := splitRecipients(os.Getenv("WEEKLY_REPORT_RECIPIENTS"))
	if len(recipients) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	var counts []communeCount
	err := s.SignalementDB.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"deletedAt": nil, "status": models.SignalementStatusPending}},
		{"$group": bson.M{"_id": "$codeCommune", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
	}, &counts)
	if err != nil {
		zap.S().Errorw("failed to aggregate pending signalements", "error", err)
		return
	}

	var total int64
	for i := range counts {
		counts[i].Nom = cog.CommuneNom(counts[i].CodeCommune)
		total += counts[i].Count
	}

	msgContext := map[string]interface{}{
		"date":     time.Now().Format("02/01/2006"),
		"communes": counts,
		"total":    total,
	}
	for _, to := range recipients {
		err := s.Mailer.Send(ctx, mailer.Message{
			To:       to,
			Subject:  "Signalements en attente - rapport hebdomadaire",
			Template: html.TemplateWeeklyReport,
			Context:  msgContext,
		})
		if err != nil {
			zap.S().Warnw("failed to send weekly report", "to", to, "error", err)
		}
	}
}

func splitRecipients(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
