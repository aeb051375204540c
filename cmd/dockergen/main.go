package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/rubyruntime/dockergen/internal/appconfig"
	"github.com/rubyruntime/dockergen/internal/application"
	"github.com/rubyruntime/dockergen/internal/logging"
	"github.com/rubyruntime/dockergen/internal/render"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	app := kingpin.New("dockergen", "Generate a Dockerfile for a Ruby web application from its App Engine configuration")
	workspace := app.Flag("workspace", "Path to the application workspace directory").Default(".").String()
	appYaml := app.Flag("app-yaml", "Descriptor path relative to the workspace (overrides GAE_APPLICATION_YAML_PATH)").String()
	baseImage := app.Flag("base-image", "Base container image for the generated Dockerfile").Default(render.DefaultBaseImage).String()
	dockerfileName := app.Flag("dockerfile", "File name for the generated Dockerfile").Default("Dockerfile").String()
	verbose := app.Flag("verbose", "Enable debug logging").Bool()

	kingpin.MustParse(app.Parse(args))

	logger, err := logging.New(*verbose)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	generator := application.New(application.Options{
		WorkspaceDir:   *workspace,
		AppYamlPath:    *appYaml,
		BaseImage:      *baseImage,
		DockerfileName: *dockerfileName,
	}, logger)

	if err := generator.Run(context.Background()); err != nil {
		var cfgErr *appconfig.Error
		if errors.As(err, &cfgErr) {
			// Configuration mistakes are the user's to fix; print them
			// verbatim instead of as a log record.
			fmt.Fprintln(os.Stderr, cfgErr.Error())
			return 1
		}
		logger.Error("dockerfile generation failed", zap.Error(err))
		return 1
	}
	return 0
}
