package cmd

import (
	"fmt"

	"github.com/relgate/relgate/internal/config"
	"github.com/relgate/relgate/internal/repository"
	"github.com/relgate/relgate/internal/usecase"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.

type container struct {
	cfg *config.Config
	log *zap.Logger

	fsRepo  repository.FileSystemRepository
	gitRepo repository.GitRepository
	reports repository.ReportRepository
}

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	log, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	fsRepo := repository.FileSystemRepository(afero.NewOsFs())

	var gitRepo repository.GitRepository
	switch cfg.GitBackend {
	case config.BackendCLI:
		gitRepo = repository.NewGitCLIRepository()
	default:
		gitRepo, err = repository.NewGitRepository()
		if err != nil {
			return nil, err
		}
	}

	reports := repository.NewJSONReportRepository(fsRepo, cfg.StateDir)

	return &container{
		cfg:     cfg,
		log:     log,
		fsRepo:  fsRepo,
		gitRepo: gitRepo,
		reports: reports,
	}, nil
}

// newLogger builds a console logger suited for interactive and CI use.
func newLogger() (*zap.Logger, error) {
	logCfg := zap.NewDevelopmentConfig()
	logCfg.DisableStacktrace = true
	return logCfg.Build()
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}

	checkUC := &usecase.CheckWorktreeUseCase{
		GitRepo: c.gitRepo,
		Reports: c.reports,
		Cfg:     c.cfg,
		Log:     c.log,
	}
	resolveUC := &usecase.ResolveVersionUseCase{
		GitRepo: c.gitRepo,
		Cfg:     c.cfg,
		Log:     c.log,
	}

	rootCmd.AddCommand(NewCheckCmd(checkUC))
	rootCmd.AddCommand(NewNextVersionCmd(resolveUC))
	rootCmd.AddCommand(newVersionCmd())

	return nil
}
