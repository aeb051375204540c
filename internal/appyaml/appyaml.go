package appyaml

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// EnvPath overrides the descriptor location relative to the workspace.
	EnvPath = "GAE_APPLICATION_YAML_PATH"
	// DefaultPath is used when neither an explicit path nor EnvPath is set.
	DefaultPath = "./app.yaml"

	defaultService = "default"
)

// Document is a parsed application descriptor. Root, RuntimeConfig, and
// BetaSettings are always mapping nodes; when a section is absent or has the
// wrong shape it is replaced by an empty mapping so callers never nil-check.
type Document struct {
	// Path is the descriptor location relative to the workspace, after
	// applying the explicit-argument / environment / default precedence.
	Path          string
	Root          *yaml.Node
	RuntimeConfig *yaml.Node
	BetaSettings  *yaml.Node
	Service       string
}

// Load reads and parses the descriptor for the given workspace. The effective
// path is the explicit argument if non-empty, else the EnvPath environment
// variable, else DefaultPath. Read and parse failures are fatal and name the
// file that was attempted.
func Load(workspaceDir, explicitPath string) (*Document, error) {
	path := explicitPath
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		path = DefaultPath
	}

	full := filepath.Join(workspaceDir, path)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("unable to read application configuration %s: %v", full, err)
	}

	var tree yaml.Node
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("unable to parse application configuration %s: %v", full, err)
	}

	root := emptyMapping()
	if len(tree.Content) > 0 && tree.Content[0].Kind == yaml.MappingNode {
		root = tree.Content[0]
	}

	doc := &Document{
		Path:          path,
		Root:          root,
		RuntimeConfig: MappingOf(Lookup(root, "runtime_config")),
		BetaSettings:  MappingOf(Lookup(root, "beta_settings")),
		Service:       defaultService,
	}
	if s, ok := ScalarString(Lookup(root, "service")); ok && s != "" {
		doc.Service = s
	}
	return doc, nil
}

func emptyMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}
