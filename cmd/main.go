package main

import (
	"context"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/SkyEye-FAST/mc-lang/internal/config"
	"github.com/SkyEye-FAST/mc-lang/internal/service"
	"github.com/SkyEye-FAST/mc-lang/pkg/log"
)

func main() {
	// Initialize configuration
	cfg, err := config.New()
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}
	log.InitLogger(log.ParseLevel(cfg.Run.LogLevel))

	ctx := context.Background()

	if cfg.Run.RunOnce {
		svc := service.NewRunnableUpdateService(*cfg, nil)
		result, err := svc.RunOnce(ctx)
		if err != nil {
			log.Error("Update run aborted: %v", err)
			os.Exit(1)
		}
		if !result.Clean() {
			log.Error("Update run finished with failed locales: %v", result.FailedLocales())
			os.Exit(1)
		}
		return
	}

	cron := cron.New()
	cronSvc := service.NewRunnableUpdateService(*cfg, cron)

	if err := cronSvc.Schedule(ctx); err != nil {
		log.Fatal("Failed to schedule update run: %v", err)
	}
	cron.Run()
}
