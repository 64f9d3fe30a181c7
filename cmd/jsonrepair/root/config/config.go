package config

import (
	"github.com/spf13/cobra"

	"github.com/deepankarm/jsonrepair/cmd/jsonrepair/root/config/set"
	"github.com/deepankarm/jsonrepair/cmd/jsonrepair/root/config/view"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <command>",
		Short: "Configuration commands",
		Long:  `Commands for managing the CLI configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(set.NewSetCmd())
	cmd.AddCommand(view.NewViewCmd())

	return cmd
}
