package serve

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/deepankarm/jsonrepair/cmd/jsonrepair/root/version"
	"github.com/deepankarm/jsonrepair/pkg/ginrepair"
)

func NewServeCmd() *cobra.Command {
	defaults := ginrepair.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the repair HTTP server",
		Long: heredoc.Doc(`
			Serve the repair engine over HTTP. POST /v1/repair takes a JSON request,
			POST /v1/repair/raw takes the text to repair as the request body. The
			OpenAPI description is served at /openapi.json.
		`),
		Example: heredoc.Doc(`
			# Listen on port 9090 without the docs page
			$ jsonrepair serve --addr :9090 --docs=false

			# Repair a body
			$ curl -s localhost:8080/v1/repair/raw -d "{'a': 1,"
		`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logger, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			cfg := ginrepair.DefaultConfig()
			cfg.Addr = viper.GetString("addr")
			cfg.MaxBodyBytes = viper.GetInt64("max-body-bytes")
			cfg.Docs = viper.GetBool("docs")
			cfg.Version = version.Version

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return ginrepair.NewServer(cfg, logger).Run(ctx)
		},
	}

	cmd.Flags().String("addr", defaults.Addr, "Address to listen on")
	cmd.Flags().Int64("max-body-bytes", defaults.MaxBodyBytes, "Largest accepted request body in bytes")
	cmd.Flags().Bool("docs", defaults.Docs, "Serve Swagger UI at /docs")

	for _, name := range []string{"addr", "max-body-bytes", "docs"} {
		_ = viper.BindPFlag(name, cmd.Flags().Lookup(name))
	}

	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		gin.SetMode(gin.DebugMode)
		return zap.NewDevelopment()
	}
	gin.SetMode(gin.ReleaseMode)
	return zap.NewProduction()
}
