package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/hxbox"
)

// EncodeOptions holds flags for the encode command.
type EncodeOptions struct {
	*RootOptions
	Props     string
	Key       string
	Sensitive bool
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EncodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode props into a signed token",
		Long: `Encode a props mapping into a token that 'hxbox render --token' accepts.

Tokens are signed with --key, or encrypted with --sensitive.

Example:
  hxbox encode --key secret --props '{size: 10, title: hi}'`,
		Args:          commandArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Props, "props", "p", "", "props as a YAML/JSON mapping")
	cmd.Flags().StringVar(&opts.Key, "key", "", "signing key (required)")
	cmd.Flags().BoolVar(&opts.Sensitive, "sensitive", false, "encrypt instead of sign")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func runEncode(opts *EncodeOptions, cmd *cobra.Command) error {
	props, err := parseProps(opts.Props)
	if err != nil {
		return WrapExitError(ExitCommandError, "bad --props", err)
	}
	enc, err := hxbox.NewEncoder([]byte(opts.Key))
	if err != nil {
		return WrapExitError(ExitCommandError, "bad --key", err)
	}
	token, err := hxbox.EncodeProps(enc, props, opts.Sensitive)
	if err != nil {
		return WrapExitError(ExitFailure, "encode failed", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
