package processor

import (
	"context"
	"errors"
	"sync"
	"time"

	"viralWallet/domain"
	"viralWallet/pkg/logger"
	"viralWallet/pkg/metrics"
)

// OrdersService is the slice of the order engine the processor needs.
type OrdersService interface {
	ListStuckProcessing(ctx context.Context, olderThan time.Duration) ([]domain.Order, error)
	AutoComplete(ctx context.Context, orderID uint) (domain.Order, error)
}

// Processor auto-completes orders that have been processing for longer than
// the grace period. One sweep runs at a time; ticks never overlap because
// the loop is serial by construction.
type Processor struct {
	orders   OrdersService
	grace    time.Duration
	interval time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

func New(orders OrdersService, grace, interval time.Duration) *Processor {
	return &Processor{
		orders:   orders,
		grace:    grace,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background loop: one immediate sweep, then one per
// interval until Stop is called.
func (p *Processor) Start() {
	p.startOnce.Do(func() {
		go p.run()
	})
}

// Stop halts the loop and waits for any in-flight sweep to finish. Stopping
// a processor that never started returns immediately and pins startOnce so a
// later Start stays a no-op.
func (p *Processor) Stop() {
	p.startOnce.Do(func() {
		close(p.done)
	})
	p.stopOnce.Do(func() {
		close(p.stop)
	})
	<-p.done
}

func (p *Processor) run() {
	defer close(p.done)

	logger.Info("Order processor started", "grace", p.grace.String(), "interval", p.interval.String())

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Sweep(context.Background())

	for {
		select {
		case <-p.stop:
			logger.Info("Order processor stopped")
			return
		case <-ticker.C:
			p.Sweep(context.Background())
		}
	}
}

// Sweep completes every order stuck in processing past the grace period and
// returns how many it completed. Orders that changed state under the
// sweep's feet are skipped, not treated as failures.
func (p *Processor) Sweep(ctx context.Context) int {
	stuck, err := p.orders.ListStuckProcessing(ctx, p.grace)
	if err != nil {
		logger.Error("Order processor sweep failed", err)
		return 0
	}

	completed := 0
	for _, order := range stuck {
		if _, err := p.orders.AutoComplete(ctx, order.ID); err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrInvalidState) {
				continue
			}
			logger.Error("Failed to auto-complete order", "order_id", order.ID, "error", err)
			continue
		}

		metrics.OrdersAutoCompleted.Inc()
		logger.Info("Order auto-completed", "order_id", order.ID)
		completed++
	}

	return completed
}
