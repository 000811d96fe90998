package main

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/elatovg/gce-snapshots/internal/app"
	"github.com/elatovg/gce-snapshots/pkg/config/env"
	"github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/logger"
	"github.com/elatovg/gce-snapshots/pkg/ports/cli"
	"github.com/elatovg/gce-snapshots/pkg/ports/rest"
	"github.com/elatovg/gce-snapshots/pkg/utils/validator"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const envFile = ".env"

func main() {
	if err := run(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; variables may come from the environment.
	if err := godotenv.Load(envFile); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.NewErrEnvLoad(envFile, err)
	}

	configurations, err := env.SetupConfigurations()
	if err != nil {
		return errors.NewErrConfigSetup(err)
	}
	defer func() { _ = logger.GetLogger().Sync() }()

	logger.GetLogger().Debug("Configuration loaded",
		zap.String("provider", string(configurations.CloudProviderType)),
		zap.Bool("wait_for_operations", configurations.WaitForOperations))

	v := validator.NewValidator()
	application := app.NewApp(*configurations)
	server := rest.NewServer(application, v)

	return cli.NewCommand(application, v, server, configurations).
		InitiateCommands().
		ExecuteContext(context.Background())
}
