package cli

import (
	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0"
	commit  = ""
	date    = ""
)

type rootOptions struct {
	configPath string
	view       viewFlags
}

func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "cellview [file]",
		Short:         "View a text file one screen at a time",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: false,
		SilenceUsage:  true,
		Version:       buildVersion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts, fileArg(args))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Override config file path (default: OS user config dir)")
	opts.view.register(cmd)

	cmd.AddCommand(
		newDumpCmd(opts),
		newConfigCmd(opts),
	)

	return cmd
}

func fileArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}
