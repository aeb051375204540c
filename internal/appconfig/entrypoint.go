package appconfig

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rubyruntime/dockergen/internal/appyaml"
)

const (
	rackConfigFile          = "config.ru"
	defaultRackupEntrypoint = "bundle exec rackup -p $PORT"
)

// assignmentPrefix matches entrypoints that lead with a variable assignment
// such as "RAILS_ENV=production bin/rails server".
var assignmentPrefix = regexp.MustCompile(`^\w+=`)

func (r *Resolver) resolveEntrypoint(_ context.Context, doc *appyaml.Document, cfg *Config) error {
	node := appyaml.Lookup(doc.RuntimeConfig, "entrypoint")
	if node == nil {
		node = appyaml.Lookup(doc.Root, "entrypoint")
	}

	if node != nil && node.Kind == yaml.SequenceNode {
		// Exec-form entrypoints are rendered as a JSON array literal and are
		// never decorated.
		rendered, err := json.Marshal(appyaml.StringList(node))
		if err != nil {
			return errorf("unable to render entrypoint list: %v", err)
		}
		cfg.RawEntrypoint = string(rendered)
		cfg.Entrypoint = cfg.RawEntrypoint
		return nil
	}

	var raw string
	if node != nil {
		raw, _ = appyaml.ScalarString(node)
	} else if readableFile(filepath.Join(r.workspaceDir, rackConfigFile)) {
		raw = defaultRackupEntrypoint
	}
	if raw == "" {
		return errorf("unable to determine the application entrypoint;" +
			" please add an entrypoint setting to the application configuration")
	}
	if strings.Contains(raw, "\n") {
		return errorf("the application entrypoint may not contain a newline")
	}

	cfg.RawEntrypoint = raw
	cfg.Entrypoint = decorateEntrypoint(raw)
	return nil
}

// decorateEntrypoint prefixes a shell entrypoint with "exec " so the
// application replaces the shell and receives signals directly. Compound
// commands are left alone because exec would apply to only part of them, and
// leading variable assignments are left alone because the prefix would break
// their semantics. Already-decorated entrypoints pass through, which makes
// the transformation idempotent.
func decorateEntrypoint(entrypoint string) string {
	if strings.HasPrefix(entrypoint, "exec ") {
		return entrypoint
	}
	if strings.ContainsAny(entrypoint, ";|") || strings.Contains(entrypoint, "&&") {
		return entrypoint
	}
	if assignmentPrefix.MatchString(entrypoint) {
		return entrypoint
	}
	return "exec " + entrypoint
}

// readableFile reports whether path is an existing, readable regular file.
// Unreadable files are treated as absent.
func readableFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	info, err := f.Stat()
	_ = f.Close()
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
