package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rodrigotabsan/RAGIoT/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question-answering pipeline over HTTP",
	Long: `Build the index and expose it as a small JSON API:

  POST /api/v1/query    {"question": "..."}
  GET  /api/v1/health
  GET  /api/v1/session

Examples:
  ragiot serve
  ragiot serve --port 9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	session, vectorStore, err := newSession(cfg, GetRootDir())
	if err != nil {
		return err
	}
	defer vectorStore.Close()

	if err := session.Init(cmd.Context()); err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}

	port := cfg.Server.Port
	if servePort != "" {
		port = servePort
	}

	return server.New(session).Listen(":" + port)
}
