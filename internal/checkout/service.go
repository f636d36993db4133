package checkout

import (
	"context"
	"errors"
	"time"

	"bazaar-be/internal/address"
	"bazaar-be/internal/cart"
	"bazaar-be/internal/inventory"
	"bazaar-be/internal/logger"
	"bazaar-be/internal/metrics"
	"bazaar-be/internal/order"
	"bazaar-be/internal/pricing"
	"bazaar-be/internal/settings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultTimeout = 3 * time.Second

// SettingsLoader is the configuration store. It never fails; a degraded
// snapshot carries static defaults.
type SettingsLoader interface {
	Load(ctx context.Context) settings.Snapshot
}

// StockGuard checks stock before commit and reconciles it after.
type StockGuard interface {
	CheckStock(ctx context.Context, c cart.Cart) ([]inventory.Violation, error)
	Reconcile(ctx context.Context, items []cart.Item) error
}

type Service interface {
	Quote(ctx context.Context, c cart.Cart, addr address.Address) Quote
	Checkout(ctx context.Context, req Request) (*Result, error)
	Stats() metrics.CheckoutStats
}

type service struct {
	settings SettingsLoader
	engine   *pricing.Engine
	stock    StockGuard
	orders   order.Repository

	timeout time.Duration
	metrics *metrics.Checkout
	now     func() time.Time
	newID   func() string
}

type Option func(*service)

// WithTimeout bounds the order write.
func WithTimeout(d time.Duration) Option {
	return func(s *service) { s.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func WithMetrics(m *metrics.Checkout) Option {
	return func(s *service) { s.metrics = m }
}

func NewService(
	settingsLoader SettingsLoader,
	engine *pricing.Engine,
	stock StockGuard,
	orders order.Repository,
	opts ...Option,
) Service {
	s := &service{
		settings: settingsLoader,
		engine:   engine,
		stock:    stock,
		orders:   orders,
		timeout:  DefaultTimeout,
		metrics:  &metrics.Checkout{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote prices the cart for the address without validating or writing
// anything.
func (s *service) Quote(ctx context.Context, c cart.Cart, addr address.Address) Quote {
	s.metrics.Quotes.Inc()

	a := newAttempt(Request{Cart: c, Address: addr})
	s.loadInputs(ctx, a)
	_ = s.resolveZone(ctx, a)
	_ = s.computePricing(ctx, a)

	q := Quote{
		MatchType:         a.match.MatchType,
		AddressSelected:   a.located,
		DeliveryAvailable: a.located && a.match.Deliverable(),
		Pricing:           a.pricing,
		MinimumOrder:      a.minOrder,
		ConfigDegraded:    a.snapshot.Degraded,
	}
	if a.match.Zone != nil {
		q.Zone = a.match.Zone
		q.DeliveryTimeEstimate = a.match.Zone.DeliveryTimeEstimate
	}
	return q
}

// Checkout runs one attempt through the pipeline, stopping at the first
// failing stage. The request cart is never modified; on success the
// returned cart is empty.
func (s *service) Checkout(ctx context.Context, req Request) (*Result, error) {
	ctx = logger.WithCheckoutID(ctx, s.newID())
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Checkout"),
		zap.String("method", "Checkout"),
		zap.String("user_id", req.UserID),
		zap.String("order_type", string(req.Cart.OrderType())),
		zap.Int("item_count", req.Cart.Len()),
	)

	timer := metrics.StartTimer()
	s.metrics.Attempts.Inc()

	a := newAttempt(req)
	for _, st := range s.pipeline() {
		log.Debug("checkout stage", zap.String("stage", st.name))
		if err := st.run(ctx, a); err != nil {
			s.recordFailure(log, st.name, err)
			return nil, err
		}
	}

	s.metrics.Successes.Inc()
	log.Info("checkout completed",
		zap.String("order_id", a.order.IDHex()),
		zap.Float64("grand_total", a.pricing.GrandTotal),
		zap.String("zone_match", string(a.match.MatchType)),
		zap.Bool("config_degraded", a.snapshot.Degraded),
		zap.Bool("stock_issue", a.stockErr != nil),
		zap.Int64("duration_ms", timer.Duration().Milliseconds()),
	)

	return &Result{
		Order:          a.order,
		Cart:           cart.New(),
		StockIssue:     a.stockErr,
		ConfigDegraded: a.snapshot.Degraded,
	}, nil
}

func (s *service) Stats() metrics.CheckoutStats {
	return s.metrics.Stats()
}

func (s *service) recordFailure(log *zap.Logger, stage string, err error) {
	log = log.With(zap.String("stage", stage))

	var (
		verr *ValidationError
		cerr *CommitError
	)
	switch {
	case errors.As(err, &verr):
		s.metrics.ValidationFailures.Inc()
		log.Warn("checkout validation failed",
			zap.String("code", string(verr.Code)),
			zap.String("message", verr.Message),
		)
	case errors.As(err, &cerr):
		s.metrics.CommitFailures.Inc()
		log.Error("order commit failed", zap.Error(cerr.Err))
	case errors.Is(err, ErrServiceUnavailable):
		s.metrics.Unavailable.Inc()
		log.Error("checkout collaborator unavailable", zap.Error(err))
	default:
		log.Error("checkout failed", zap.Error(err))
	}
}
