package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/relgate/relgate/internal/domain"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"
)

const (
	// ReportSchemaVersion defines the current schema version for report files
	ReportSchemaVersion = "1.0.0"
	// ReportFilePermissions defines the permissions for report files
	ReportFilePermissions = 0600
	// ReportDirPermissions defines the permissions for the report directory
	ReportDirPermissions = 0700
	// LockTimeout defines the maximum time to wait for a lock
	LockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond

	reportFileName = "last-check.json"
	lockFileName   = "last-check.lock"
)

// ReportRepository defines the interface for persisting gate reports.
type ReportRepository interface {
	Save(ctx context.Context, report *domain.CheckReport) error
	LoadLatest(ctx context.Context) (*domain.CheckReport, error)
}

// ReportMetadata contains metadata about the report file
type ReportMetadata struct {
	SchemaVersion string    `json:"schema_version"`
	SavedAt       time.Time `json:"saved_at"`
}

// ReportWrapper wraps the report with metadata
type ReportWrapper struct {
	Metadata ReportMetadata      `json:"metadata"`
	Report   *domain.CheckReport `json:"report"`
}

// JSONReportRepository implements ReportRepository using JSON file storage
type JSONReportRepository struct {
	fs       afero.Fs
	stateDir string
}

// NewJSONReportRepository creates a new JSON-based report repository
func NewJSONReportRepository(fs afero.Fs, stateDir string) ReportRepository {
	if stateDir == "" {
		stateDir = ".relgate"
	}
	return &JSONReportRepository{
		fs:       fs,
		stateDir: stateDir,
	}
}

// Save persists the gate report to a JSON file with proper locking.
// Only the lock acquisition retries; a failed write is final.
func (r *JSONReportRepository) Save(ctx context.Context, report *domain.CheckReport) error {
	if err := r.fs.MkdirAll(r.stateDir, ReportDirPermissions); err != nil {
		return fmt.Errorf("failed to ensure report directory: %w", err)
	}
	lock := flock.New(filepath.Join(r.stateDir, lockFileName))
	if err := r.acquireLock(ctx, lock); err != nil {
		return fmt.Errorf("failed to acquire report lock: %w", err)
	}
	defer lock.Unlock() //nolint:errcheck // Unlock failure does not invalidate the written report
	wrapper := ReportWrapper{
		Metadata: ReportMetadata{
			SchemaVersion: ReportSchemaVersion,
			SavedAt:       time.Now().UTC(),
		},
		Report: report,
	}
	data, err := json.MarshalIndent(wrapper, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	filename := filepath.Join(r.stateDir, reportFileName)
	if err := afero.WriteFile(r.fs, filename, data, ReportFilePermissions); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// LoadLatest returns the most recently saved report, or nil when no
// gate has run yet.
func (r *JSONReportRepository) LoadLatest(_ context.Context) (*domain.CheckReport, error) {
	filename := filepath.Join(r.stateDir, reportFileName)
	exists, err := afero.Exists(r.fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to check report file: %w", err)
	}
	if !exists {
		return nil, nil
	}
	data, err := afero.ReadFile(r.fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var wrapper ReportWrapper
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return wrapper.Report, nil
}

// acquireLock tries the file lock with constant backoff until LockTimeout.
func (r *JSONReportRepository) acquireLock(ctx context.Context, lock *flock.Flock) error {
	backoff := retry.WithMaxDuration(LockTimeout, retry.NewConstant(LockRetryInterval))
	return retry.Do(ctx, backoff, func(_ context.Context) error {
		locked, err := lock.TryLock()
		if err != nil {
			return err
		}
		if !locked {
			return retry.RetryableError(fmt.Errorf("report lock held by another process"))
		}
		return nil
	})
}
