package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bambawatch/internal/artifacts"
	"bambawatch/internal/config"
	"bambawatch/internal/datastore"
	"bambawatch/internal/extractor"
	"bambawatch/internal/logger"
	"bambawatch/internal/notifier"
	"bambawatch/internal/orchestrator"
	"bambawatch/internal/rslimiter"
	"bambawatch/internal/scheduler"
)

func main() {
	globalConfigFile := flag.String("globalconfig", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("gc", "", "Alias for --globalconfig")

	modeFlag := flag.String("mode", "", "Mode to run the tool: onetime, automated or digest (overrides config file if set)")
	modeFlagAlias := flag.String("m", "", "Alias for --mode")
	flag.Parse()

	if *globalConfigFile == "" && *globalConfigFileAlias != "" {
		*globalConfigFile = *globalConfigFileAlias
	}
	if *modeFlag == "" && *modeFlagAlias != "" {
		*modeFlag = *modeFlagAlias
	}

	gCfg, err := config.LoadGlobalConfig(*globalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load global config: %v", err)
	}
	if *modeFlag != "" {
		gCfg.Mode = *modeFlag
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}
	zLogger.Info().Str("mode", gCfg.Mode).Int("stores", len(gCfg.Stores)).Msg("BambaWatch starting")

	location, err := time.LoadLocation(gCfg.SchedulerConfig.Timezone)
	if err != nil {
		zLogger.Fatal().Err(err).Str("timezone", gCfg.SchedulerConfig.Timezone).Msg("Unknown timezone")
	}

	subscriberStore, err := datastore.NewSubscriberStore(gCfg.SubscriberStoreConfig, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to open subscriber store")
	}
	defer subscriberStore.Close()

	sink := artifacts.FromConfig(gCfg.ArtifactConfig, zLogger)
	checker := extractor.NewExtractor(gCfg.ExtractorConfig, sink, zLogger)
	guard := rslimiter.NewMemoryGuard(gCfg.ResourceLimiterConfig, zLogger)
	historyStore := datastore.NewHistoryStore(gCfg.StorageConfig, zLogger)
	transport := notifier.NewSMTPTransport(gCfg.NotificationConfig, zLogger)
	dispatcher := notifier.NewDispatcher(transport, gCfg.NotificationConfig, zLogger)

	orch := orchestrator.NewOrchestrator(gCfg, checker, guard, historyStore, subscriberStore, dispatcher, location, zLogger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch gCfg.Mode {
	case "onetime", "":
		if err := orch.RunCycle(ctx); err != nil {
			zLogger.Fatal().Err(err).Msg("Run failed")
		}
	case "digest":
		if err := orch.RunDigest(ctx); err != nil {
			zLogger.Fatal().Err(err).Msg("Digest failed")
		}
	case "automated":
		sched := scheduler.NewScheduler(gCfg, orch, location, zLogger)
		if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zLogger.Fatal().Err(err).Msg("Scheduler terminated")
		}
	default:
		zLogger.Fatal().Str("mode", gCfg.Mode).Msg("Unknown mode (expected onetime, automated or digest)")
	}

	zLogger.Info().Msg("BambaWatch finished")
}
