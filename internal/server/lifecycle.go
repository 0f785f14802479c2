// Package server provides application lifecycle management including
// graceful startup and shutdown with signal handling.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DefaultStopTimeout bounds how long Run waits for one service to return after
// its context is cancelled.
const DefaultStopTimeout = 5 * time.Second

// Service represents a long-running component.
type Service interface {
	// Run blocks until ctx is cancelled or the service fails. A service that
	// stops because ctx was cancelled returns nil.
	Run(ctx context.Context) error
}

// Lifecycle manages the startup and shutdown of multiple services.
// Services are started in order and stopped in reverse order.
type Lifecycle struct {
	logger      *zap.Logger
	services    []namedService
	mu          sync.Mutex
	stopTimeout time.Duration
}

type namedService struct {
	name    string
	service Service
}

type runningService struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLifecycle creates a new Lifecycle manager.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		logger:      logger,
		stopTimeout: DefaultStopTimeout,
	}
}

// SetStopTimeout overrides DefaultStopTimeout.
//
// Precondition: d > 0.
func (l *Lifecycle) SetStopTimeout(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopTimeout = d
}

// Add registers a named service for lifecycle management.
// Services are started in the order they are added.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts all services and blocks until a termination signal is received
// (SIGINT or SIGTERM), ctx is cancelled, or a service fails. Services are then
// cancelled in reverse order.
//
// Postcondition: All services have returned or timed out; the first service
// failure, if any, is returned.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	stopTimeout := l.stopTimeout
	l.mu.Unlock()

	errCh := make(chan error, len(services))
	running := make([]runningService, 0, len(services))
	for _, ns := range services {
		svcCtx, svcCancel := context.WithCancel(ctx)
		rs := runningService{name: ns.name, cancel: svcCancel, done: make(chan struct{})}
		running = append(running, rs)

		go func() {
			defer close(rs.done)
			l.logger.Info("starting service",
				zap.String("service", ns.name),
			)
			svcStart := time.Now()
			if err := ns.service.Run(svcCtx); err != nil && !errors.Is(err, context.Canceled) {
				l.logger.Error("service failed",
					zap.String("service", ns.name),
					zap.Error(err),
					zap.Duration("uptime", time.Since(svcStart)),
				)
				errCh <- fmt.Errorf("service %s: %w", ns.name, err)
			}
		}()
	}

	l.logger.Info("all services started",
		zap.Int("count", len(services)),
		zap.Duration("startup", time.Since(start)),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		l.logger.Info("received signal, shutting down",
			zap.String("signal", sig.String()),
		)
	case runErr = <-errCh:
		l.logger.Error("service error, shutting down",
			zap.Error(runErr),
		)
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
	}

	l.shutdown(running, stopTimeout)

	l.logger.Info("shutdown complete",
		zap.Duration("total_uptime", time.Since(start)),
	)
	return runErr
}

func (l *Lifecycle) shutdown(running []runningService, timeout time.Duration) {
	shutdownStart := time.Now()
	for i := len(running) - 1; i >= 0; i-- {
		rs := running[i]
		svcStart := time.Now()
		l.logger.Info("stopping service",
			zap.String("service", rs.name),
		)
		rs.cancel()
		select {
		case <-rs.done:
			l.logger.Info("service stopped",
				zap.String("service", rs.name),
				zap.Duration("elapsed", time.Since(svcStart)),
			)
		case <-time.After(timeout):
			l.logger.Warn("service did not stop in time",
				zap.String("service", rs.name),
				zap.Duration("timeout", timeout),
			)
		}
	}
	l.logger.Info("all services stopped",
		zap.Duration("shutdown_elapsed", time.Since(shutdownStart)),
	)
}
