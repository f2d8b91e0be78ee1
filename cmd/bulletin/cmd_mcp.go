package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/bulletin"
	"github.com/hazyhaar/bulletin/dbopen"
	"github.com/hazyhaar/bulletin/internal/store"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve bulletin tools over MCP on stdio",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, _ []string) error {
	// Stdout carries the protocol; logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := &bulletin.Config{}
	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.Fetch.BaseURL = v
	}

	var opts []bulletin.Option
	if path := os.Getenv("DB_PATH"); path != "" {
		db, err := dbopen.Open(path, dbopen.WithMkdirAll(), dbopen.WithSchema(store.Schema))
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, bulletin.WithStore(store.New(db)))
	}

	svc := bulletin.New(cfg, logger, opts...)

	srv := mcp.NewServer(&mcp.Implementation{Name: "bulletin", Version: version}, nil)
	svc.RegisterMCP(srv)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("mcp server on stdio", "version", version)
	return srv.Run(ctx, &mcp.StdioTransport{})
}
