// Package render turns a resolved configuration into a Dockerfile and a
// matching .dockerignore. It is strictly presentational: every value it
// receives has already been validated by the resolver.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/rubyruntime/dockergen/internal/appconfig"
)

// DefaultBaseImage is used when the caller does not pick a base image.
const DefaultBaseImage = "gcr.io/google-appengine/ruby:latest"

var dockerfileTemplate = template.Must(template.New("Dockerfile").
	Funcs(template.FuncMap{
		"join":  strings.Join,
		"quote": strconv.Quote,
	}).
	Parse(`# Dockerfile for service "{{.Config.ServiceName}}" generated by dockergen.
FROM {{.BaseImage}}

{{if .Config.RubyVersion -}}
RUN rbenv install -s {{.Config.RubyVersion}} \
    && rbenv global {{.Config.RubyVersion}} \
    && gem install -q --no-document bundler

{{end -}}
{{if .Config.InstallPackages -}}
RUN apt-get update -y \
    && apt-get install -y -q {{join .Config.InstallPackages " "}} \
    && apt-get clean \
    && rm -rf /var/lib/apt/lists/*

{{end -}}
COPY . /app/

{{range .Config.EnvVariables -}}
ENV {{.Name}}={{quote .Value}}
{{end -}}
RUN if test -f Gemfile; then bundle install {{if .Config.HasGemfileLock}}--deployment {{end}}--without="development test" \
    && rbenv rehash; fi

{{range .Config.BuildScripts -}}
RUN {{.}}
{{end -}}

ENTRYPOINT []
CMD ["/bin/bash", "-c", {{quote .Config.Entrypoint}}]
`))

type dockerfileData struct {
	Config    *appconfig.Config
	BaseImage string
}

// Dockerfile renders the container build file for a resolved configuration.
func Dockerfile(cfg *appconfig.Config, baseImage string) (string, error) {
	if baseImage == "" {
		baseImage = DefaultBaseImage
	}

	var out strings.Builder
	err := dockerfileTemplate.Execute(&out, dockerfileData{Config: cfg, BaseImage: baseImage})
	if err != nil {
		return "", fmt.Errorf("render dockerfile: %w", err)
	}
	return out.String(), nil
}

// Dockerignore returns the ignore list written next to the Dockerfile. The
// generated files themselves are excluded so rebuilding stays idempotent.
func Dockerignore(dockerfileName string) string {
	entries := []string{
		".dockerignore",
		dockerfileName,
		".git",
		".hg",
		".svn",
		"log",
		"tmp",
	}
	return strings.Join(entries, "\n") + "\n"
}
