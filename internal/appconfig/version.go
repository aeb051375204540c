package appconfig

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/rubyruntime/dockergen/internal/appyaml"
)

const rubyVersionFile = ".ruby-version"

var gemfileLockNames = []string{"Gemfile.lock", "gems.locked"}

var (
	// bundlePlatformRuby matches the version in `bundle platform --ruby`
	// output such as "ruby 2.6.5p114".
	bundlePlatformRuby = regexp.MustCompile(`ruby\s+(\d[\w.-]*)`)
	// rubyVersionPrefix matches pin files written as "ruby-2.6.5".
	rubyVersionPrefix = regexp.MustCompile(`^ruby-(\d+\.\d+\..*)$`)
)

func (r *Resolver) resolveRubyVersion(ctx context.Context, _ *appyaml.Document, cfg *Config) error {
	version := r.pinnedRubyVersion()
	if version == "" {
		version = r.bundledRubyVersion(ctx)
	}
	if m := rubyVersionPrefix.FindStringSubmatch(version); m != nil {
		version = m[1]
	}
	if version != "" {
		if err := rubyVersionRule.check(version); err != nil {
			return err
		}
	}

	cfg.RubyVersion = version
	cfg.HasGemfileLock = r.hasGemfileLock()
	return nil
}

// pinnedRubyVersion reads the .ruby-version pin file; a missing or unreadable
// file yields an empty version and falls through to bundler introspection.
func (r *Resolver) pinnedRubyVersion() string {
	data, err := os.ReadFile(filepath.Join(r.workspaceDir, rubyVersionFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// bundledRubyVersion asks bundler which ruby the Gemfile pins. Subprocess
// failures and unrecognized output both yield an empty version.
func (r *Resolver) bundledRubyVersion(ctx context.Context) string {
	out, err := r.runner.Output(ctx, r.workspaceDir, "bundle", "platform", "--ruby")
	if err != nil {
		r.logger.Debug("bundle platform lookup failed", zap.Error(err))
		return ""
	}
	if m := bundlePlatformRuby.FindStringSubmatch(string(out)); m != nil {
		return m[1]
	}
	return ""
}

func (r *Resolver) hasGemfileLock() bool {
	for _, name := range gemfileLockNames {
		if readableFile(filepath.Join(r.workspaceDir, name)) {
			return true
		}
	}
	return false
}
