package appconfig

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/rubyruntime/dockergen/internal/appyaml"
)

const (
	// EnvProjectID overrides the metadata-server project identity lookup.
	EnvProjectID = "PROJECT_ID"

	unknownProjectID = "(unknown)"
	exampleProjectID = "my-project-id"
)

// ProjectLookup obtains the cloud project identity from the environment the
// build runs in. Errors are swallowed by the resolver: an unreachable
// metadata server simply leaves the identity unset.
type ProjectLookup interface {
	ProjectID(ctx context.Context) (string, error)
}

// Resolver derives a Config from a workspace and its application descriptor.
type Resolver struct {
	workspaceDir string
	appYamlPath  string
	projects     ProjectLookup
	runner       CommandRunner
	logger       *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithAppYamlPath sets an explicit descriptor path relative to the
// workspace, taking precedence over the environment override and default.
func WithAppYamlPath(path string) Option {
	return func(r *Resolver) {
		r.appYamlPath = path
	}
}

// WithProjectLookup sets the collaborator used to discover the cloud project
// identity when the PROJECT_ID environment variable is unset.
func WithProjectLookup(lookup ProjectLookup) Option {
	return func(r *Resolver) {
		r.projects = lookup
	}
}

// WithCommandRunner overrides the subprocess runner (primarily for tests).
func WithCommandRunner(runner CommandRunner) Option {
	return func(r *Resolver) {
		r.runner = runner
	}
}

// WithLogger sets the logger used for non-fatal lookup failures.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver for the given workspace directory.
func New(workspaceDir string, opts ...Option) *Resolver {
	r := &Resolver{
		workspaceDir: workspaceDir,
		runner:       execRunner{},
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type resolveStep func(ctx context.Context, doc *appyaml.Document, cfg *Config) error

// Resolve performs the one-shot configuration resolution. The descriptor is
// loaded first because every later step reads from it, and the entrypoint is
// resolved before the build scripts because the default asset-precompile
// script reuses the decorated entrypoint.
func (r *Resolver) Resolve(ctx context.Context) (*Config, error) {
	doc, err := appyaml.Load(r.workspaceDir, r.appYamlPath)
	if err != nil {
		return nil, asConfigError(err)
	}

	cfg := &Config{
		WorkspaceDir: r.workspaceDir,
		AppYamlPath:  doc.Path,
		ServiceName:  doc.Service,
	}

	steps := []resolveStep{
		r.resolveProject,
		r.resolveEnvVariables,
		r.resolvePackages,
		r.resolveRubyVersion,
		r.resolveCloudSQL,
		r.resolveEntrypoint,
		r.resolveBuildScripts,
	}
	for _, step := range steps {
		if err := step(ctx, doc, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (r *Resolver) resolveProject(ctx context.Context, _ *appyaml.Document, cfg *Config) error {
	id := os.Getenv(EnvProjectID)
	if id == "" && r.projects != nil {
		found, err := r.projects.ProjectID(ctx)
		if err != nil {
			r.logger.Debug("project identity lookup failed", zap.Error(err))
		} else {
			id = found
		}
	}

	cfg.ProjectID = id
	cfg.ProjectIDForDisplay = id
	cfg.ProjectIDForExample = id
	if id == "" {
		cfg.ProjectIDForDisplay = unknownProjectID
		cfg.ProjectIDForExample = exampleProjectID
	}
	return nil
}

func (r *Resolver) resolveEnvVariables(_ context.Context, doc *appyaml.Document, cfg *Config) error {
	pairs := appyaml.Pairs(appyaml.Lookup(doc.Root, "env_variables"))
	cfg.EnvVariables = make([]EnvVar, 0, len(pairs))
	for _, pair := range pairs {
		if err := envNameRule.check(pair.Key); err != nil {
			return err
		}
		cfg.EnvVariables = append(cfg.EnvVariables, EnvVar{Name: pair.Key, Value: pair.Value})
	}
	return nil
}

func (r *Resolver) resolvePackages(_ context.Context, doc *appyaml.Document, cfg *Config) error {
	// runtime_config wins whenever the key is present, even as an explicit
	// empty list; only a missing key falls back to the top level.
	node := appyaml.Lookup(doc.RuntimeConfig, "packages")
	if node == nil {
		node = appyaml.Lookup(doc.Root, "packages")
	}

	packages := appyaml.StringList(node)
	for _, name := range packages {
		if err := packageNameRule.check(name); err != nil {
			return err
		}
	}
	cfg.InstallPackages = packages
	return nil
}

func (r *Resolver) resolveCloudSQL(_ context.Context, doc *appyaml.Document, cfg *Config) error {
	entries := appyaml.StringList(appyaml.Lookup(doc.BetaSettings, "cloud_sql_instances"))
	instances := make([]string, 0, len(entries))
	for _, entry := range entries {
		for _, name := range strings.Split(entry, ",") {
			if err := cloudSQLNameRule.check(name); err != nil {
				return err
			}
			instances = append(instances, name)
		}
	}
	cfg.CloudSQLInstances = instances
	return nil
}
