// Package toolserver exposes the dice roller as MCP tools.
//
// Two tools are registered: roll_dice parses and rolls a natural-language
// request and returns the full audit record; parse_dice returns the canonical
// expression without rolling. Failures surface as tool errors whose text
// begins with the bracketed dice error code.
package toolserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/cory-johannsen/diceroller/internal/config"
	"github.com/cory-johannsen/diceroller/internal/dice"
)

// Version is advertised to MCP clients during initialization.
const Version = "0.1.0"

// defaultShutdownTimeout caps graceful HTTP shutdown.
const defaultShutdownTimeout = 5 * time.Second

// Server serves the dice tools over the configured MCP transport.
type Server struct {
	cfg       config.ServerConfig
	mcpServer *mcp.Server
	logger    *zap.Logger
}

// New creates a Server with roll_dice and parse_dice registered.
//
// Precondition: roller and logger must be non-nil.
func New(cfg config.ServerConfig, roller *dice.Roller, logger *zap.Logger) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: cfg.Name, Version: Version}, nil)
	mcp.AddTool(mcpServer, rollTool(), rollHandler(roller))
	mcp.AddTool(mcpServer, parseTool(), parseHandler(roller))
	return &Server{cfg: cfg, mcpServer: mcpServer, logger: logger}
}

// Run serves on the configured transport until ctx is cancelled.
//
// Postcondition: Returns nil after a cancellation-driven stop.
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Transport {
	case config.TransportStdio:
		s.logger.Info("serving MCP over stdio", zap.String("name", s.cfg.Name))
		return s.ServeTransport(ctx, &mcp.StdioTransport{})
	case config.TransportHTTP:
		ln, err := net.Listen("tcp", s.cfg.HTTPAddr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", s.cfg.HTTPAddr, err)
		}
		return s.Serve(ctx, ln)
	default:
		return fmt.Errorf("unsupported transport %q", s.cfg.Transport)
	}
}

// ServeTransport runs a single MCP session over transport.
func (s *Server) ServeTransport(ctx context.Context, transport mcp.Transport) error {
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// Serve accepts streamable HTTP MCP sessions on ln until ctx is cancelled.
// Serve takes ownership of ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving MCP over HTTP", zap.String("addr", ln.Addr().String()))
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve HTTP: %w", err)
	}
	return nil
}
