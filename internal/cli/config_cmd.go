package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/cellview/internal/config"
	"github.com/baaaaaaaka/cellview/internal/source"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change saved viewer preferences",
	}
	cmd.AddCommand(
		newConfigShowCmd(root),
		newConfigPathCmd(root),
		newConfigSetCmd(root),
	)
	return cmd
}

func newConfigShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print every preference and its saved value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := config.NewStore(root.configPath)
			if err != nil {
				return err
			}
			cfg, err := store.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, key := range config.Keys() {
				v, _ := cfg.Get(key)
				if v == "" {
					v = "(default)"
				}
				if _, err := fmt.Fprintf(out, "%s = %s\n", key, v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newConfigPathCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := config.NewStore(root.configPath)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return err
		},
	}
}

func newConfigSetCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Save a preference; omit the value to reset it",
		Long:  "Keys: " + strings.Join(config.Keys(), ", "),
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := ""
			if len(args) > 1 {
				value = args[1]
			}
			if key == "encoding" && strings.TrimSpace(value) != "" && !source.Supported(value) {
				return fmt.Errorf("unsupported encoding %q", value)
			}
			store, err := config.NewStore(root.configPath)
			if err != nil {
				return err
			}
			return store.Update(func(cfg *config.Config) error {
				return cfg.Set(key, value)
			})
		},
	}
}
