package paymentgateway

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// Option defines a functional option for configuring Gateway.
type Option func(*Gateway) error

// WithApprovalLimit sets the largest amount a single payment may have.
func WithApprovalLimit(limit decimal.Decimal) Option {
	return func(g *Gateway) error {
		if !limit.IsPositive() {
			return ErrNonPositiveApprovalLimit
		}

		g.approvalLimit = limit

		return nil
	}
}

// WithTransportFault makes every request fail with err, as if the gateway could not be reached.
func WithTransportFault(err error) Option {
	return func(g *Gateway) error {
		g.transportErr = err
		return nil
	}
}

// WithIDGenerator replaces the random part of transaction IDs, for reproducible output.
func WithIDGenerator(newID func() string) Option {
	return func(g *Gateway) error {
		g.newID = newID
		return nil
	}
}

// WithClock sets the clock used for ledger timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) error {
		g.now = now
		return nil
	}
}

// WithLogger sets the logger for the Gateway.
func WithLogger(logger catalog.Logger) Option {
	return func(g *Gateway) error {
		g.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Gateway. It wins over a plain logger.
func WithContextualLogger(logger catalog.ContextualLogger) Option {
	return func(g *Gateway) error {
		g.contextualLogger = logger
		return nil
	}
}
