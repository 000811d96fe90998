package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/elatovg/gce-snapshots/internal/retention"
	"github.com/elatovg/gce-snapshots/pkg/cloud"
	"github.com/elatovg/gce-snapshots/pkg/cloud/aws"
	"github.com/elatovg/gce-snapshots/pkg/cloud/gcp"
	config "github.com/elatovg/gce-snapshots/pkg/config/cloud"
	"github.com/elatovg/gce-snapshots/pkg/config/env"
	"github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/logger"
	"github.com/elatovg/gce-snapshots/pkg/metrics"
	"github.com/elatovg/gce-snapshots/pkg/output"
	"github.com/elatovg/gce-snapshots/pkg/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultZone     = "us-central1-f"
	DefaultInstance = "demo-instance"
	DefaultDays     = 7
)

// RunOptions are the validated parameters of one rotation.
type RunOptions struct {
	Project         string
	Zone            string
	Instance        string
	Days            int
	TimestampOffset string
	Wait            bool
}

// AppRunner defines the contract for running one snapshot rotation
type AppRunner interface {
	Run(ctx context.Context, opts RunOptions, runtype ports.Runtype) (*retention.Result, error)
}

// ProviderFactory builds the snapshot provider for the configured cloud.
type ProviderFactory func(ctx context.Context, configurations env.Configurations, wait bool) (cloud.SnapshotProvider, error)

type App struct {
	Logger         *zap.Logger
	configurations env.Configurations
	newProvider    ProviderFactory
	out            io.Writer
	clock          retention.Clock
}

// NewApp initializes and returns a new App instance
func NewApp(configurations env.Configurations) *App {
	return &App{
		Logger:         logger.GetLogger(),
		configurations: configurations,
		newProvider:    NewProvider,
		out:            os.Stdout,
	}
}

// Configurations returns the application's configuration settings
func (a *App) Configurations() env.Configurations {
	return a.configurations
}

func (a *App) SetProviderFactory(f ProviderFactory) {
	a.newProvider = f
}

// SetOutput redirects the audit trail, which goes to stdout by default.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

func (a *App) SetClock(c retention.Clock) {
	a.clock = c
}

// NewProvider picks the provider implementation for CloudProviderType.
func NewProvider(ctx context.Context, configurations env.Configurations, wait bool) (cloud.SnapshotProvider, error) {
	switch configurations.CloudProviderType {
	case config.GCP:
		p, err := gcp.NewProvider(ctx, configurations.CloudConfig)
		if err != nil {
			return nil, err
		}
		p.SetWaitForOperations(wait)
		return p, nil
	case config.AWS:
		p, err := aws.NewProvider(ctx, configurations.CloudConfig)
		if err != nil {
			return nil, err
		}
		p.SetWaitForOperations(wait)
		return p, nil
	default:
		return nil, errors.NewUnsupportedProvider(string(configurations.CloudProviderType))
	}
}

// Run performs one rotation: build the provider, run the engine with the
// console reporter, print the summary and record metrics. The partial
// result is returned alongside any error.
func (a *App) Run(ctx context.Context, opts RunOptions, runtype ports.Runtype) (*retention.Result, error) {
	start := time.Now()
	log := a.Logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("trigger", string(runtype)),
		zap.String("provider", string(a.configurations.CloudProviderType)),
	)

	offset := opts.TimestampOffset
	if offset == "" {
		offset = a.configurations.TimestampOffset
	}
	wait := opts.Wait || a.configurations.WaitForOperations

	provider, err := a.newProvider(ctx, a.configurations, wait)
	if err != nil {
		log.Error("Failed to initialise cloud provider", zap.Error(err))
		a.record(runtype, nil, start, err)
		return nil, err
	}

	console := output.NewConsole(a.out)
	engine := retention.NewEngine(provider, console)
	engine.SetTimestampParser(retention.TimestampParser{ExpectedOffset: offset})
	engine.SetLogger(log)
	if a.clock != nil {
		engine.SetClock(a.clock)
	}

	result, err := engine.Run(ctx, retention.Request{
		Project:  opts.Project,
		Zone:     opts.Zone,
		Instance: opts.Instance,
		Policy:   retention.Policy{Days: opts.Days},
	})
	console.PrintSummary(result)
	a.record(runtype, result, start, err)

	if err != nil {
		return result, err
	}
	log.Info("Run completed",
		zap.Int("created", result.CreatedCount()),
		zap.Int("deleted", result.DeletedCount()),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (a *App) record(runtype ports.Runtype, result *retention.Result, start time.Time, err error) {
	outcome := metrics.Outcome(err)
	provider := string(a.configurations.CloudProviderType)

	metrics.RunsTotal.WithLabelValues(outcome, string(runtype)).Inc()
	metrics.RunDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	metrics.SnapshotsCreated.WithLabelValues(provider).Add(float64(result.CreatedCount()))
	metrics.SnapshotsDeleted.WithLabelValues(provider).Add(float64(result.DeletedCount()))
}
