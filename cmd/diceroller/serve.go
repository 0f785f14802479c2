package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/diceroller/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var transport, httpAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dice tools over MCP",
		Long: `Serve roll_dice and parse_dice to MCP clients.

The stdio transport speaks MCP on stdin/stdout and logs to stderr; the http
transport serves streamable HTTP on server.http_addr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()

			cfg, err := root.load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cmd.Flags().Changed("transport") {
				cfg.Server.Transport = transport
			}
			if cmd.Flags().Changed("http-addr") {
				cfg.Server.HTTPAddr = httpAddr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a, err := initializeApp(cfg)
			if err != nil {
				return fmt.Errorf("initializing: %w", err)
			}
			defer func() { _ = a.logger.Sync() }()

			a.logger.Info("starting dice roller",
				zap.String("name", cfg.Server.Name),
				zap.String("transport", cfg.Server.Transport),
				zap.String("rng_source", cfg.Dice.RNGSource),
				zap.Duration("startup", time.Since(start)),
			)

			lifecycle := server.NewLifecycle(a.logger)
			lifecycle.Add("mcp", a.toolServer)
			return lifecycle.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "", "override server.transport (stdio or http)")
	cmd.Flags().StringVar(&httpAddr, "http-addr", "", "override server.http_addr")
	return cmd
}
