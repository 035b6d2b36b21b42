package di

import (
	"gorm.io/gorm"

	"credd/internal/controllers"
	"credd/internal/providers"
	"credd/internal/services"
	"credd/internal/statistic"
	"credd/internal/statistic/interfaces"
	"credd/internal/storage"
	"credd/internal/structures"
)

// Toolkit is the subset of the graph used by one-shot CLI commands.
type Toolkit struct {
	Config     *structures.Config
	Logger     providers.Logger
	Analyzer   services.AnalyzerServiceInterface
	KnownFakes *storage.KnownFakeRepository
	Sources    *storage.SourceRepository
}

var migrate = storage.Migrate

func provideDatabase(conf *structures.Config, logger providers.Logger) (*gorm.DB, func(), error) {
	db, err := providers.NewDatabaseProvider(conf, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := migrate(db); err != nil {
		cleanup()
		return nil, nil, err
	}
	return db, cleanup, nil
}

func provideCache(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (providers.CacheProviderInterface, func()) {
	cache := providers.NewInstrumentedCacheProvider(conf, logger, metrics)
	return cache, func() {
		if err := cache.Close(); err != nil {
			logger.Warnf(providers.TypeApp, "close cache: %v", err)
		}
	}
}

func provideHealthController(history *storage.HistoryRepository, cache *services.ResultCache) *controllers.HealthController {
	return controllers.NewHealthController(history, cache)
}

func provideFileManager(compressor interfaces.CompressorInterface, history *storage.HistoryRepository, fakes *storage.KnownFakeRepository, logger providers.Logger) (*statistic.FileManager, func()) {
	fm := statistic.NewFileManager(compressor, history, fakes, logger)
	return fm, fm.Close
}
