package statistic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"credd/internal/providers"
	"credd/internal/statistic/interfaces"
	"credd/internal/structures"
)

const persistTimeout = 5 * time.Minute

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	fileManager *FileManager
	uploader    SnapshotUploader
	metrics     providers.MetricsProviderInterface
	cron        *cron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() error {
	if !s.config.Persistence.Enabled {
		s.logger.Infof(providers.TypeApp, "Persistence disabled, snapshots will not be written")
		return nil
	}

	s.cron = cron.New()
	schedule := "@every " + s.config.Persistence.SaveInterval.String()
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		_ = s.Persist(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule snapshots %q: %w", schedule, err)
	}

	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Snapshots scheduled %s to %s", schedule, s.config.Persistence.FilePath)
	return nil
}

// Stop waits for a running snapshot to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) Restore(ctx context.Context) error {
	if !s.config.Persistence.Enabled {
		return nil
	}
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	return s.fileManager.LoadFromFile(ctx, s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist(ctx context.Context) error {
	if !s.config.Persistence.Enabled {
		return nil
	}
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	data, err := s.fileManager.SaveToFile(ctx, s.config.Persistence.FilePath)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	s.logger.Infof(providers.TypeApp, "Persisted snapshot to file %s", s.config.Persistence.FilePath)

	if err := s.uploader.Upload(ctx, data); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while uploading snapshot: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, fileManager *FileManager, uploader SnapshotUploader, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		fileManager: fileManager,
		uploader:    uploader,
		metrics:     metrics,
	}
}
