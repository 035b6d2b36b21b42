package models

import "time"

const SnapshotVersion = 1

// Snapshot is the on-disk envelope written by the persistence scheduler.
type Snapshot struct {
	Version    int                `json:"version"`
	TakenAt    time.Time          `json:"taken_at"`
	Scans      []*ScanResult      `json:"scans"`
	KnownFakes []*KnownFakeRecord `json:"known_fakes"`
}
