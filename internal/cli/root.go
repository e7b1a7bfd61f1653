package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pthm/hxbox"
	"github.com/pthm/hxbox/internal/definition"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	File    string // definitions file
}

// NewRootCommand creates the root command for the hxbox CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "hxbox",
		Short: "hxbox - polymorphic boxes for Templ",
		Long: `Render and preview boxes declared in a YAML definitions file.

A box pairs a base element with options. Props the options read are
consumed; every other prop is forwarded to the element.`,
		SilenceUsage: true,
		// Flag problems that cobra only finds after parsing are command
		// errors too.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.ValidateRequiredFlags(); err != nil {
				return WrapExitError(ExitCommandError, "bad flags", err)
			}
			if err := cmd.ValidateFlagGroups(); err != nil {
				return WrapExitError(ExitCommandError, "bad flags", err)
			}
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "bad flags", err)
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", "boxes.yaml", "definitions file")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewEncodeCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// commandArgs reports argument validation failures as command errors.
func commandArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "bad arguments", err)
		}
		return nil
	}
}

// newLogger configures logging based on the verbose flag.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// loadRegistry loads the definitions file into a registry.
func loadRegistry(opts *RootOptions, logger *slog.Logger) (*definition.File, *hxbox.Registry, error) {
	file, err := definition.LoadFile(opts.File)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load definitions", err)
	}
	reg, err := file.Registry(logger)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to build boxes", err)
	}
	logger.Debug("definitions loaded", "file", opts.File, "boxes", len(file.Boxes))
	return file, reg, nil
}
