package appconfig

// EnvVar is one application environment variable. Order matters: variables
// are emitted into the generated Dockerfile in descriptor order.
type EnvVar struct {
	Name  string
	Value string
}

// Config is the fully resolved build configuration. It is built once per
// resolution run and never mutated afterward.
type Config struct {
	// WorkspaceDir is the application root supplied by the caller.
	WorkspaceDir string
	// AppYamlPath is the descriptor path relative to the workspace after
	// applying the override precedence.
	AppYamlPath string

	// ProjectID is empty when no identity could be determined.
	ProjectID string
	// ProjectIDForDisplay substitutes a literal unknown marker when the
	// project id is absent.
	ProjectIDForDisplay string
	// ProjectIDForExample substitutes a placeholder project name when the
	// project id is absent.
	ProjectIDForExample string

	ServiceName       string
	EnvVariables      []EnvVar
	InstallPackages   []string
	CloudSQLInstances []string

	// RubyVersion is empty when no pin or lockfile introspection yielded one.
	RubyVersion    string
	HasGemfileLock bool

	// RawEntrypoint is the entrypoint as configured (or defaulted);
	// Entrypoint is its decorated form.
	RawEntrypoint string
	Entrypoint    string

	BuildScripts []string
}
