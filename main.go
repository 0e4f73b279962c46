package main

import (
	"context"
	"flag"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/adresse-io/signalement-api/api/handlers"
	"github.com/adresse-io/signalement-api/api/scheduler"
	"github.com/adresse-io/signalement-api/config"
	"github.com/adresse-io/signalement-api/databases"
	"github.com/adresse-io/signalement-api/mailer"
)

func main() {
	// local development reads its environment from a .env file
	_ = godotenv.Load()

	expireOrphaned := flag.Bool("expire-orphaned", false,
		"mark pending signalements of communes absent from the COG as EXPIRED, then exit")
	flag.Parse()

	conf := config.New()

	app := handlers.App{}
	if err := app.Initialize(conf); err != nil {
		zap.S().Fatalw("failed to initialize the application", "error", err)
	}

	signalementDB := databases.NewSignalementDatabase(app.DB)
	mailService := mailer.NewSendgrid(conf.MailFromName, conf.MailFrom)
	sched := scheduler.New(signalementDB, mailService)

	if *expireOrphaned {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		count, err := sched.ExpireOrphanedSignalements(ctx)
		if err != nil {
			zap.S().Fatalw("failed to expire orphaned signalements", "error", err)
		}
		zap.S().Infow("done", "expired", count)
		return
	}

	if err := sched.Start(); err != nil {
		zap.S().Fatalw("failed to start the scheduler", "error", err)
	}
	defer sched.Stop()

	port := conf.Port
	if port == "" {
		port = "8080"
	}

	zap.S().Infow("server started", "port", port)
	zap.S().Fatal(http.ListenAndServe(":"+port, app.Router))
}
