//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"credd/internal"
	"credd/internal/analyzer"
	"credd/internal/controllers"
	"credd/internal/factcheck"
	"credd/internal/providers"
	"credd/internal/scoring"
	"credd/internal/services"
	"credd/internal/statistic"
	"credd/internal/storage"
	"credd/internal/structures"
)

var storeSet = wire.NewSet(
	provideDatabase,
	storage.NewHistoryRepository,
	storage.NewKnownFakeRepository,
	storage.NewSourceRepository,
	storage.NewFeedbackRepository,
	wire.Bind(new(services.HistoryStore), new(*storage.HistoryRepository)),
	wire.Bind(new(services.KnownFakeRegistry), new(*storage.KnownFakeRepository)),
	wire.Bind(new(services.SourceRatings), new(*storage.SourceRepository)),
	wire.Bind(new(services.FeedbackStore), new(*storage.FeedbackRepository)),
	wire.Bind(new(factcheck.Ratings), new(*storage.SourceRepository)),
	wire.Bind(new(providers.RowCounter), new(*storage.HistoryRepository)),
)

var pipelineSet = wire.NewSet(
	providers.NewMetricsProvider,
	provideCache,
	services.NewResultCache,
	analyzer.NewAnalyzer,
	scoring.NewScorer,
	factcheck.NewFinder,
	services.NewAnalyzerService,
)

func InitApp(flags *structures.CliFlags) (*internal.App, func(), error) {
	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		storeSet,
		pipelineSet,

		services.NewHistoryService,
		services.NewStatisticService,
		services.NewFeedbackService,
		wire.Bind(new(controllers.CacheAdmin), new(*services.ResultCache)),
		controllers.NewApiController,
		provideHealthController,

		statistic.NewZstdCompressor,
		provideFileManager,
		statistic.NewSnapshotUploader,
		statistic.NewScheduler,

		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitToolkit(flags *structures.CliFlags) (*Toolkit, func(), error) {
	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		storeSet,
		pipelineSet,
		wire.Struct(new(Toolkit), "*"),
	)

	return nil, nil, nil
}
