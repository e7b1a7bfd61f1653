package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/hxbox"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Props     string
	Token     string
	Key       string
	Sensitive bool
	Digest    bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <box>",
		Short: "Render a box to HTML",
		Long: `Render one box from the definitions file and print its HTML.

Props come from --props as a YAML or JSON mapping, or from a token made
by 'hxbox encode'. With --digest the fingerprint of the final props bag
is printed after the HTML.

Example:
  hxbox render card --props '{class: red, title: hi}'
  hxbox render card --token "$(hxbox encode --key k --props '{size: 3}')" --key k`,
		Args:          commandArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Props, "props", "p", "", "props as a YAML/JSON mapping")
	cmd.Flags().StringVar(&opts.Token, "token", "", "props token from 'hxbox encode'")
	cmd.Flags().StringVar(&opts.Key, "key", "", "key used to verify --token")
	cmd.Flags().BoolVar(&opts.Sensitive, "sensitive", false, "token is encrypted rather than signed")
	cmd.Flags().BoolVar(&opts.Digest, "digest", false, "print the final bag's digest")
	cmd.MarkFlagsMutuallyExclusive("props", "token")

	return cmd
}

func runRender(opts *RenderOptions, name string, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	_, reg, err := loadRegistry(opts.RootOptions, logger)
	if err != nil {
		return err
	}

	props, err := renderProps(opts)
	if err != nil {
		return err
	}

	box, err := reg.Get(name)
	if err != nil {
		return WrapExitError(ExitCommandError, "unknown box", err)
	}

	component, err := box.Build(props, nil)
	if err != nil {
		return WrapExitError(ExitFailure, "render failed", err)
	}
	html, err := hxbox.RenderString(cmd.Context(), component)
	if err != nil {
		return WrapExitError(ExitFailure, "render failed", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), html)

	if opts.Digest {
		bag, err := box.Bag(props, nil)
		if err != nil {
			return WrapExitError(ExitFailure, "render failed", err)
		}
		digest, err := hxbox.Digest(bag)
		if err != nil {
			return WrapExitError(ExitFailure, "digest failed", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sha256:%s\n", digest)
	}
	return nil
}

func renderProps(opts *RenderOptions) (hxbox.Props, error) {
	if opts.Token == "" {
		props, err := parseProps(opts.Props)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "bad --props", err)
		}
		return props, nil
	}
	if opts.Key == "" {
		return nil, WrapExitError(ExitCommandError, "--token requires --key", nil)
	}
	enc, err := hxbox.NewEncoder([]byte(opts.Key))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "bad --key", err)
	}
	props, err := hxbox.DecodeProps(enc, opts.Token, opts.Sensitive)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "bad --token", err)
	}
	return props, nil
}
