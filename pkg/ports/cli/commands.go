package cli

import (
	"strconv"

	"github.com/elatovg/gce-snapshots/internal/app"
	"github.com/elatovg/gce-snapshots/pkg/config/env"
	"github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/logger"
	"github.com/elatovg/gce-snapshots/pkg/parser"
	"github.com/elatovg/gce-snapshots/pkg/ports"
	"github.com/elatovg/gce-snapshots/pkg/utils/validator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Server is the HTTP surface started by the serve command.
type Server interface {
	Start(port string) error
}

type Command struct {
	app            app.AppRunner
	validator      validator.Validator
	server         Server
	configurations env.Config
}

type runFlags struct {
	zone    string
	name    string
	days    string
	offset  string
	wait    bool
	profile string
	format  string
}

func NewCommand(appInstance app.AppRunner, v validator.Validator, server Server, configurations env.Config) *Command {
	return &Command{
		app:            appInstance,
		validator:      v,
		server:         server,
		configurations: configurations,
	}
}

// InitiateCommands builds the root command, which runs one rotation, and
// the serve subcommand.
func (c *Command) InitiateCommands() *cobra.Command {
	var flags runFlags

	rootCmd := &cobra.Command{
		Use:           "gce-snapshots <project_id>",
		Short:         "Snapshot every disk of an instance and delete snapshots older than the retention window",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolveOptions(cmd, args[0], flags)
			if err != nil {
				return err
			}
			_, err = c.app.Run(cmd.Context(), opts, ports.CLI)
			return err
		},
	}

	rootCmd.Flags().StringVar(&flags.zone, "zone", app.DefaultZone, "zone of the instance")
	rootCmd.Flags().StringVar(&flags.name, "name", app.DefaultInstance, "name of the instance")
	rootCmd.Flags().StringVar(&flags.days, "days", strconv.Itoa(app.DefaultDays), "number of days worth of snapshots to keep")
	rootCmd.Flags().StringVar(&flags.offset, "offset", "", "expected UTC offset of snapshot creation timestamps, e.g. -08:00")
	rootCmd.Flags().BoolVar(&flags.wait, "wait", false, "wait for each create and delete operation to finish")
	rootCmd.Flags().StringVar(&flags.profile, "profile", "", "HCL or JSON file with default run parameters")
	rootCmd.Flags().StringVar(&flags.format, "format", "", "profile format: hcl or json (default: from file extension)")

	var port string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(port)
			if err != nil {
				return errors.NewErrPortParse(port, err)
			}
			if n < 1 || n > 65535 {
				return errors.NewErrPortOutOfRange(n)
			}
			return c.server.Start(port)
		},
	}
	serveCmd.Flags().StringVar(&port, "port", c.configurations.PortToString(), "port for the HTTP server")

	rootCmd.AddCommand(serveCmd)
	return rootCmd
}

// resolveOptions applies an explicitly set flag over the profile value,
// and the profile value over the flag default, then validates the result.
func (c *Command) resolveOptions(cmd *cobra.Command, project string, flags runFlags) (app.RunOptions, error) {
	if err := c.validator.ValidateProject(project); err != nil {
		return app.RunOptions{}, err
	}

	if flags.profile != "" {
		format, err := c.validator.ValidateFormat(flags.format)
		if err != nil {
			return app.RunOptions{}, err
		}
		profile, err := parser.LoadProfile(flags.profile, format)
		if err != nil {
			return app.RunOptions{}, err
		}
		logger.GetLogger().Debug("Loaded run profile", zap.String("path", flags.profile))
		applyProfile(cmd, profile, &flags)
	}

	if err := c.validator.ValidateZone(flags.zone); err != nil {
		return app.RunOptions{}, err
	}
	if err := c.validator.ValidateInstanceName(flags.name); err != nil {
		return app.RunOptions{}, err
	}
	days, err := c.validator.ValidateRetentionDays(flags.days)
	if err != nil {
		return app.RunOptions{}, err
	}
	if err := c.validator.ValidateOffset(flags.offset); err != nil {
		return app.RunOptions{}, err
	}

	return app.RunOptions{
		Project:         project,
		Zone:            flags.zone,
		Instance:        flags.name,
		Days:            days,
		TimestampOffset: flags.offset,
		Wait:            flags.wait,
	}, nil
}

func applyProfile(cmd *cobra.Command, p *parser.Profile, flags *runFlags) {
	changed := cmd.Flags().Changed
	if p.Zone != nil && !changed("zone") {
		flags.zone = *p.Zone
	}
	if p.Instance != nil && !changed("name") {
		flags.name = *p.Instance
	}
	if p.RetentionDays != nil && !changed("days") {
		flags.days = strconv.Itoa(*p.RetentionDays)
	}
	if p.TimestampOffset != nil && !changed("offset") {
		flags.offset = *p.TimestampOffset
	}
	if p.Wait != nil && !changed("wait") {
		flags.wait = *p.Wait
	}
}
