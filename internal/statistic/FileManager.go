package statistic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"credd/internal/models"
	"credd/internal/providers"
	"credd/internal/statistic/interfaces"
)

type ScanArchive interface {
	Export(ctx context.Context) ([]*models.ScanResult, error)
	Import(ctx context.Context, scans []*models.ScanResult) (int, error)
}

type KnownFakeArchive interface {
	Export(ctx context.Context) ([]*models.KnownFakeRecord, error)
	Import(ctx context.Context, records []*models.KnownFakeRecord) (int, error)
}

// FileManager writes and reads compressed snapshots of the scan history and
// the known-fakes registry.
type FileManager struct {
	scans      ScanArchive
	fakes      KnownFakeArchive
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	now        func() time.Time
}

func NewFileManager(compressor interfaces.CompressorInterface, scans ScanArchive, fakes KnownFakeArchive, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		scans:      scans,
		fakes:      fakes,
		logger:     logger,
		now:        time.Now,
	}
}

// Snapshot reads both tables and returns the encoded, compressed envelope.
func (f *FileManager) Snapshot(ctx context.Context) ([]byte, error) {
	scans, err := f.scans.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("export history: %w", err)
	}
	fakes, err := f.fakes.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("export known fakes: %w", err)
	}

	jsonData, err := json.Marshal(&models.Snapshot{
		Version:    models.SnapshotVersion,
		TakenAt:    f.now().UTC(),
		Scans:      scans,
		KnownFakes: fakes,
	})
	if err != nil {
		return nil, err
	}
	return f.compressor.Compress(jsonData)
}

// SaveToFile writes a snapshot next to fileName and renames it into place.
func (f *FileManager) SaveToFile(ctx context.Context, fileName string) ([]byte, error) {
	data, err := f.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return nil, err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return nil, err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return nil, err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return nil, err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return nil, err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		os.Remove(tmpFile)
		return nil, err
	}
	return data, nil
}

// LoadFromFile imports a snapshot written by SaveToFile. A missing file is not
// an error.
func (f *FileManager) LoadFromFile(ctx context.Context, fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Infof(providers.TypeApp, "No snapshot at %s, starting empty", fileName)
			return nil
		}
		return err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snap models.Snapshot
	if err := json.Unmarshal(decompressed, &snap); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", fileName, err)
	}
	if snap.Version < 1 || snap.Version > models.SnapshotVersion {
		return fmt.Errorf("snapshot %s has unsupported version %d", fileName, snap.Version)
	}

	fakes, err := f.fakes.Import(ctx, snap.KnownFakes)
	if err != nil {
		return fmt.Errorf("import known fakes: %w", err)
	}
	scans, err := f.scans.Import(ctx, snap.Scans)
	if err != nil {
		return fmt.Errorf("import history: %w", err)
	}

	f.logger.Infof(providers.TypeApp, "Restored %d scans and %d known fakes from snapshot taken at %s",
		scans, fakes, snap.TakenAt.Format(time.RFC3339))
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
