package version

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// Version is set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewVersionCmd creates a new command that displays version information
func NewVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  `Display the version, git commit, and build date of the CLI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !asJSON {
				_, err := fmt.Fprintf(out, "jsonrepair %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
				return err
			}
			data, err := json.Marshal(map[string]string{
				"version":   Version,
				"gitCommit": GitCommit,
				"buildDate": BuildDate,
			})
			if err != nil {
				return fmt.Errorf("failed to encode version: %w", err)
			}
			_, err = fmt.Fprintln(out, string(data))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version information as JSON")

	return cmd
}
