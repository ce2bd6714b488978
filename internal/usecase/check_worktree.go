package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/relgate/relgate/internal/config"
	"github.com/relgate/relgate/internal/domain"
	"github.com/relgate/relgate/internal/repository"
	"go.uber.org/zap"
)

// Reasons reported when the gate blocks a release.
const (
	ReasonStagedChanges    = "some changes staged for commit"
	ReasonUncommittedFiles = "some uncommitted files"
	ReasonUntrackedFiles   = "some untracked files"
)

// CheckWorktreeUseCase verifies the working copy is clean enough to
// release from, applying the configured exceptions.

type CheckWorktreeUseCase struct {
	GitRepo repository.GitRepository
	Reports repository.ReportRepository
	Cfg     *config.Config
	Log     *zap.Logger
}

// Execute runs the gate. It returns a ReleaseBlockedError when the
// repository is not clean per policy, otherwise a report of what it
// observed.
func (uc *CheckWorktreeUseCase) Execute(ctx context.Context) (*domain.CheckReport, error) {
	status, err := uc.observeWorktree(ctx)
	if err != nil {
		return nil, err
	}
	branch := status.Branch
	sessionID := uuid.NewString()
	log := uc.Log.With(zap.String("session_id", sessionID), zap.String("branch", branch))

	// Staged changes always block, regardless of untracked policy.
	if len(status.Staged) > 0 {
		return nil, &domain.ReleaseBlockedError{Branch: branch, Reason: ReasonStagedChanges, Paths: status.Staged}
	}

	var disallowed []string
	for _, path := range status.Dirty {
		if !uc.Cfg.IsAllowedDirty(path) {
			disallowed = append(disallowed, path)
		}
	}
	if len(disallowed) > 0 {
		return nil, &domain.ReleaseBlockedError{Branch: branch, Reason: ReasonUncommittedFiles, Paths: disallowed}
	}

	untracked, added, err := uc.stageAllowedUntracked(ctx, log, status.Untracked)
	if err != nil {
		return nil, err
	}

	switch uc.Cfg.UntrackedPolicy() {
	case domain.UntrackedDie:
		if len(untracked) > 0 {
			return nil, &domain.ReleaseBlockedError{Branch: branch, Reason: ReasonUntrackedFiles, Paths: untracked}
		}
	case domain.UntrackedWarn:
		if len(untracked) > 0 {
			log.Warn(fmt.Sprintf("branch %s has %s", branch, ReasonUntrackedFiles),
				zap.Strings("paths", untracked))
		}
	case domain.UntrackedIgnore:
		// No per-file output; the count still shows in the summary.
	}

	report := &domain.CheckReport{
		SessionID:  sessionID,
		Branch:     branch,
		Clean:      len(untracked) == 0 && len(added) == 0,
		AddedFiles: added,
		Untracked:  untracked,
		CheckedAt:  time.Now().UTC(),
	}
	if report.Clean {
		log.Info(fmt.Sprintf("branch %s is in a clean state", branch))
	} else {
		log.Info(fmt.Sprintf("branch %s has %s", branch, domain.UntrackedPhrase(len(untracked))),
			zap.Int("added_files", len(added)))
	}
	uc.persistReport(ctx, log, report)
	return report, nil
}

// observeWorktree derives the repository state for this run from the
// four git queries.
func (uc *CheckWorktreeUseCase) observeWorktree(ctx context.Context) (*domain.WorktreeStatus, error) {
	branch, err := uc.GitRepo.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current branch: %w", err)
	}
	staged, err := uc.GitRepo.StagedChanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staged changes: %w", err)
	}
	dirty, err := uc.GitRepo.DirtyFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dirty files: %w", err)
	}
	untracked, err := uc.GitRepo.UntrackedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list untracked files: %w", err)
	}
	return &domain.WorktreeStatus{
		Branch:    branch,
		Staged:    staged,
		Dirty:     dirty,
		Untracked: untracked,
	}, nil
}

// stageAllowedUntracked stages untracked files covered by the
// allow-list when add_untracked is enabled, returning the remaining
// untracked paths and the staged ones.
func (uc *CheckWorktreeUseCase) stageAllowedUntracked(
	ctx context.Context,
	log *zap.Logger,
	untracked []string,
) ([]string, []string, error) {
	if !uc.Cfg.AddUntracked {
		return untracked, nil, nil
	}
	var remaining, added []string
	for _, path := range untracked {
		if !uc.Cfg.IsAllowedDirty(path) {
			remaining = append(remaining, path)
			continue
		}
		log.Info("adding allowed untracked file", zap.String("path", path))
		if err := uc.GitRepo.AddFile(ctx, path); err != nil {
			return nil, nil, fmt.Errorf("failed to add %s: %w", path, err)
		}
		added = append(added, path)
	}
	return remaining, added, nil
}

// persistReport saves the gate outcome for auditing. Persistence is
// best effort and never blocks a release.
func (uc *CheckWorktreeUseCase) persistReport(ctx context.Context, log *zap.Logger, report *domain.CheckReport) {
	if uc.Reports == nil {
		return
	}
	if err := uc.Reports.Save(ctx, report); err != nil {
		log.Warn("failed to persist gate report", zap.Error(err))
	}
}
