// Package notifier delivers order confirmations outside the request path.
package notifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/port"
	"go.uber.org/zap"
)

const DefaultTimeout = 10 * time.Second

var ErrDispatcherClosed = errors.New("dispatcher closed")

// Dispatcher runs each notification in its own goroutine with its own timeout.
// Failures are logged and never reach the caller.
type Dispatcher struct {
	notifier port.Notifier
	timeout  time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(notifier port.Notifier, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		notifier: notifier,
		timeout:  timeout,
		logger:   logger.Named("dispatcher"),
	}
}

func (d *Dispatcher) Dispatch(order domain.Order) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.logger.Warn("notification skipped",
			zap.String("orderNumber", order.OrderNumber),
			zap.Error(ErrDispatcherClosed))
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.send(order)
	}()
}

func (d *Dispatcher) send(order domain.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := time.Now()
	if err := d.notifier.SendOrderConfirmation(ctx, order); err != nil {
		d.logger.Error("order confirmation failed",
			zap.String("orderNumber", order.OrderNumber),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return
	}

	d.logger.Info("order confirmation sent",
		zap.String("orderNumber", order.OrderNumber),
		zap.Duration("elapsed", time.Since(start)))
}

// Close stops accepting work and waits for in-flight notifications until ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
