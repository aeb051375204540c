package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rubyruntime/dockergen/internal/appconfig"
	"github.com/rubyruntime/dockergen/internal/metadata"
	"github.com/rubyruntime/dockergen/internal/render"
)

const defaultDockerfileName = "Dockerfile"

// Options selects the workspace and output shape of one generation run.
type Options struct {
	WorkspaceDir   string
	AppYamlPath    string
	BaseImage      string
	DockerfileName string
}

// App performs one resolve-and-render run over a workspace.
type App struct {
	resolver *appconfig.Resolver
	options  Options
	logger   *zap.Logger
}

// New initializes the application with the default collaborators: the
// compute metadata client for project identity and the exec-based runner for
// bundler introspection.
func New(opts Options, logger *zap.Logger) *App {
	if opts.DockerfileName == "" {
		opts.DockerfileName = defaultDockerfileName
	}

	resolver := appconfig.New(opts.WorkspaceDir,
		appconfig.WithAppYamlPath(opts.AppYamlPath),
		appconfig.WithProjectLookup(metadata.NewClient()),
		appconfig.WithLogger(logger),
	)
	return &App{resolver: resolver, options: opts, logger: logger}
}

// Run resolves the workspace configuration and writes the Dockerfile and
// .dockerignore into the workspace root.
func (a *App) Run(ctx context.Context) error {
	cfg, err := a.resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("configuration resolved",
		zap.String("service", cfg.ServiceName),
		zap.String("project", cfg.ProjectIDForDisplay),
		zap.String("ruby_version", cfg.RubyVersion),
		zap.Int("build_scripts", len(cfg.BuildScripts)),
	)

	dockerfile, err := render.Dockerfile(cfg, a.options.BaseImage)
	if err != nil {
		return err
	}

	dockerfilePath := filepath.Join(cfg.WorkspaceDir, a.options.DockerfileName)
	if err := os.WriteFile(dockerfilePath, []byte(dockerfile), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dockerfilePath, err)
	}

	ignorePath := filepath.Join(cfg.WorkspaceDir, ".dockerignore")
	ignore := render.Dockerignore(a.options.DockerfileName)
	if err := os.WriteFile(ignorePath, []byte(ignore), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", ignorePath, err)
	}

	a.logger.Info("dockerfile written", zap.String("path", dockerfilePath))
	return nil
}
