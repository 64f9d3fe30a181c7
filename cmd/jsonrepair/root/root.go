package root

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/deepankarm/jsonrepair/cmd/jsonrepair/root/config"
	"github.com/deepankarm/jsonrepair/cmd/jsonrepair/root/serve"
	"github.com/deepankarm/jsonrepair/cmd/jsonrepair/root/version"
	"github.com/deepankarm/jsonrepair/pkg/jsonrepair"
)

const stdinName = "-"

func NewRootCmd() *cobra.Command {
	var inPlace bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "jsonrepair [files...]",
		Short: "Repair malformed JSON",
		Long: heredoc.Doc(`
			Repair malformed JSON, such as the output of a language model, into
			valid minified JSON. Each file is repaired and printed to stdout; with
			no file, or with "-", stdin is read.
		`),
		Example: heredoc.Doc(`
			# Repair stdin
			$ echo "{'name': 'John', age: 30," | jsonrepair

			# Rewrite files in place, four at a time
			$ jsonrepair -i --concurrency 4 out/*.json

			# Fail when any input needed structural repair
			$ jsonrepair --strict response.json
		`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(cmd, args, inPlace, verbose)
		},
	}

	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "Rewrite each file with its repaired content")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print every repair applied")
	cmd.Flags().Bool("stream-stable", false, "Keep the tail of an unterminated string as-is")
	cmd.Flags().Bool("strict", false, "Report structural problems and exit non-zero when any is found")
	cmd.Flags().Bool("ensure-ascii", false, "Escape non-ASCII characters in the output")
	cmd.Flags().Bool("skip-fast-path", false, "Run the repair engine even on valid JSON")
	cmd.Flags().Int("concurrency", 4, "Number of files repaired at once")

	for _, name := range []string{"stream-stable", "strict", "ensure-ascii", "skip-fast-path", "concurrency"} {
		_ = viper.BindPFlag(name, cmd.Flags().Lookup(name))
	}

	cmd.AddCommand(serve.NewServeCmd())
	cmd.AddCommand(config.NewConfigCmd())
	cmd.AddCommand(version.NewVersionCmd())

	return cmd
}

func runRepair(cmd *cobra.Command, args []string, inPlace, verbose bool) error {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "jsonrepair"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if len(args) == 0 {
		args = []string{stdinName}
	}
	if inPlace && slices.Contains(args, stdinName) {
		return errors.New("--in-place needs file arguments")
	}
	stdinCount := 0
	for _, name := range args {
		if name == stdinName {
			stdinCount++
		}
	}
	if stdinCount > 1 {
		return fmt.Errorf("%q can be given only once", stdinName)
	}

	r := jsonrepair.New(repairOptions(verbose)...)
	results := make([]jsonrepair.Result, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(1, viper.GetInt("concurrency")))
	for i, name := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := readInput(cmd.InOrStdin(), name)
			if err != nil {
				return err
			}
			results[i] = r.Process(data)
			if inPlace {
				return writeInPlace(name, results[i].Output)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("repair failed", "err", err)
		return err
	}

	needRepair := 0
	for i, res := range results {
		for _, entry := range res.Log {
			logger.Debug(entry.Text, "input", args[i], "context", entry.Context)
		}
		for _, v := range res.Violations {
			logger.Warn(v.Message, "input", args[i], "type", v.Type, "loc", strings.Join(v.Loc, "."), "offset", v.Position)
		}
		if len(res.Violations) > 0 {
			needRepair++
		}

		if inPlace {
			logger.Debug("rewrote file", "file", args[i])
			continue
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(res.Output)); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if needRepair > 0 {
		return fmt.Errorf("%d of %d inputs needed structural repair", needRepair, len(args))
	}
	return nil
}

func repairOptions(verbose bool) []jsonrepair.Option {
	var opts []jsonrepair.Option
	if viper.GetBool("stream-stable") {
		opts = append(opts, jsonrepair.WithStreamStable())
	}
	if viper.GetBool("strict") {
		opts = append(opts, jsonrepair.WithStrict())
	}
	if viper.GetBool("ensure-ascii") {
		opts = append(opts, jsonrepair.WithEnsureASCII())
	}
	if viper.GetBool("skip-fast-path") {
		opts = append(opts, jsonrepair.WithSkipFastPath())
	}
	if verbose {
		opts = append(opts, jsonrepair.WithLogging())
	}
	return opts
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

func writeInPlace(name string, output []byte) error {
	info, err := os.Stat(name)
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}
	if err := os.WriteFile(name, append(output, '\n'), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
