package view

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepankarm/jsonrepair/cmd/jsonrepair/root/config/set"
)

func NewViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the configuration in effect",
		Long:  `Show every configuration key with the value in effect after flags, environment and config file are merged.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if file := viper.ConfigFileUsed(); file != "" {
				fmt.Fprintf(out, "# %s\n", file)
			}
			for _, key := range set.ValidConfigKeys {
				fmt.Fprintf(out, "%s = %v\n", key, viper.Get(key))
			}
			return nil
		},
	}

	return cmd
}
