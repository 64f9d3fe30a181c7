package set

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ValidConfigKeys defines the allowed configuration keys
var ValidConfigKeys = []string{
	"stream-stable",
	"strict",
	"ensure-ascii",
	"skip-fast-path",
	"concurrency",
	"addr",
	"max-body-bytes",
	"docs",
}

func NewSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  `Set a configuration value that will be persisted in the config file.`,
		Example: heredoc.Doc(`
			# Always escape non-ASCII output
			$ jsonrepair config set ensure-ascii true

			# Change the server address
			$ jsonrepair config set addr :9090
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			if !slices.Contains(ValidConfigKeys, key) {
				return fmt.Errorf("invalid config key: %s. Valid keys are: %v", key, ValidConfigKeys)
			}

			viper.Set(key, value)

			err := viper.WriteConfig()
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				err = viper.SafeWriteConfig()
			}
			if err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully set %s = %s\n", key, value)
			return nil
		},
	}

	return cmd
}
