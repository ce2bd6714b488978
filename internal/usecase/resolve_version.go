package usecase

import (
	"context"
	"fmt"

	"github.com/relgate/relgate/internal/config"
	"github.com/relgate/relgate/internal/domain"
	"github.com/relgate/relgate/internal/repository"
	"go.uber.org/zap"
)

// ResolveVersionUseCase computes the next release version from the
// repository tags, the configured first version, or an explicit
// override.

type ResolveVersionUseCase struct {
	GitRepo repository.GitRepository
	Cfg     *config.Config
	Log     *zap.Logger
}

// Execute resolves the next version, first matching rule wins:
// explicit override, first_version when no tag matches, otherwise the
// bump of the greatest tagged version.
func (uc *ResolveVersionUseCase) Execute(ctx context.Context) (string, error) {
	if override := uc.Cfg.VersionOverride; override != "" {
		uc.Log.Info("using version override", zap.String("version", override))
		return override, nil
	}
	pattern, err := uc.Cfg.VersionPattern()
	if err != nil {
		return "", err
	}
	tags, err := uc.GitRepo.Tags(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list tags: %w", err)
	}
	var versions []*domain.Version
	for _, tag := range tags {
		m := pattern.FindStringSubmatch(tag)
		if m == nil {
			continue
		}
		v, err := domain.NewVersion(m[1])
		if err != nil {
			uc.Log.Debug("skipping unparseable version tag", zap.String("tag", tag), zap.Error(err))
			continue
		}
		versions = append(versions, v)
	}
	last := domain.MaxVersion(versions)
	if last == nil {
		uc.Log.Info("no version tags found, using first version",
			zap.String("version", uc.Cfg.FirstVersion))
		return uc.Cfg.FirstVersion, nil
	}
	next, err := last.Next()
	if err != nil {
		return "", fmt.Errorf("failed to bump version %s: %w", last, err)
	}
	uc.Log.Info(fmt.Sprintf("bumping version from %s to %s", last, next))
	return next.String(), nil
}
