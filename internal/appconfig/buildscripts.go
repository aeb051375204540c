package appconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rubyruntime/dockergen/internal/appyaml"
)

const (
	dotenvBuildScript     = "gem install rcloadenv && rbenv rehash && rcloadenv %s > .env"
	accessCloudSQLCommand = "access_cloud_sql --lenient"
	assetPrecompileTask   = "bundle exec rake assets:precompile"

	assetsDir          = "app/assets"
	railsApplicationRB = "config/application.rb"
)

// loadEnvEntrypoint matches decorated entrypoints that load a runtime config
// before handing off, e.g. "exec rcloadenv my-config -- bin/rails s". The
// capture (up to and including "-- ") is reused to run asset precompilation
// under the same environment.
var loadEnvEntrypoint = regexp.MustCompile(`^(?:exec )?(rcloadenv .* -- )`)

func (r *Resolver) resolveBuildScripts(_ context.Context, doc *appyaml.Document, cfg *Config) error {
	buildNode := appyaml.Lookup(doc.RuntimeConfig, "build")
	dotenvConfig, _ := appyaml.ScalarString(appyaml.Lookup(doc.RuntimeConfig, "dotenv_config"))

	var scripts []string
	if buildNode != nil {
		if dotenvConfig != "" {
			return errorf("the build and dotenv_config settings cannot be used together:"+
				" a custom build would not see the environment loaded from %q;"+
				" remove dotenv_config and add an explicit"+
				" \"rcloadenv %s > .env\" step to your build scripts instead",
				dotenvConfig, dotenvConfig)
		}
		scripts = appyaml.StringList(buildNode)
	} else {
		scripts = r.defaultBuildScripts(dotenvConfig, cfg)
	}

	for _, script := range scripts {
		if strings.Contains(script, "\n") {
			return errorf("build script may not contain a newline: %q", script)
		}
	}
	cfg.BuildScripts = scripts
	return nil
}

func (r *Resolver) defaultBuildScripts(dotenvConfig string, cfg *Config) []string {
	scripts := []string{}
	if dotenvConfig != "" {
		scripts = append(scripts, fmt.Sprintf(dotenvBuildScript, dotenvConfig))
	}
	if script := r.assetPrecompileScript(cfg); script != "" {
		scripts = append(scripts, script)
	}
	return scripts
}

// assetPrecompileScript synthesizes the Rails asset precompilation step. It
// applies only to workspaces that look like a Rails app (an asset tree plus
// config/application.rb). When Cloud SQL instances are attached, a lenient
// connectivity preflight runs first so precompilation can reach the database.
func (r *Resolver) assetPrecompileScript(cfg *Config) string {
	if !isDir(filepath.Join(r.workspaceDir, assetsDir)) {
		return ""
	}
	if !readableFile(filepath.Join(r.workspaceDir, railsApplicationRB)) {
		return ""
	}

	precompile := assetPrecompileTask
	if m := loadEnvEntrypoint.FindStringSubmatch(cfg.Entrypoint); m != nil {
		precompile = m[1] + precompile
	}
	if len(cfg.CloudSQLInstances) > 0 {
		return accessCloudSQLCommand + " && " + precompile
	}
	return precompile
}
