package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bazaar-be/internal/address"
	"bazaar-be/internal/cart"
	"bazaar-be/internal/inventory"
	"bazaar-be/internal/logger"
	"bazaar-be/internal/order"
	"bazaar-be/internal/pricing"
	"bazaar-be/internal/settings"
	"bazaar-be/internal/utils"
	"bazaar-be/internal/zone"

	"go.uber.org/zap"
)

// attempt carries the state of one checkout through its stages.
type attempt struct {
	req      Request
	cart     cart.Cart
	address  address.Address
	located  bool
	snapshot settings.Snapshot
	match    zone.Match
	pricing  pricing.Breakdown
	minOrder pricing.MinOrderValidation
	order    *order.Order
	stockErr *inventory.ReconcileError
}

func newAttempt(req Request) *attempt {
	return &attempt{req: req, cart: req.Cart.Clone()}
}

type step struct {
	name string
	run  func(context.Context, *attempt) error
}

// pipeline lists the stages in execution order. Every validation precedes
// the first inventory read, and the order write precedes every inventory
// write.
func (s *service) pipeline() []step {
	return []step{
		{"collect_inputs", s.collectInputs},
		{"resolve_zone", s.resolveZone},
		{"compute_pricing", s.computePricing},
		{"validate_minimum_order", s.validateMinimumOrder},
		{"validate_address", s.validateAddress},
		{"validate_stock", s.validateStock},
		{"assemble_order", s.assembleOrder},
		{"commit_order", s.commitOrder},
		{"reconcile_stock", s.reconcileStock},
	}
}

func (s *service) collectInputs(ctx context.Context, a *attempt) error {
	if a.cart.IsEmpty() {
		return &ValidationError{
			Code:    CodeEmptyCart,
			Message: "Your cart is empty. Add items to place an order.",
			Action:  ActionBrowse,
			Err:     ErrEmptyCart,
		}
	}
	s.loadInputs(ctx, a)
	return nil
}

func (s *service) loadInputs(ctx context.Context, a *attempt) {
	a.address = a.req.Address.Sanitized()
	a.located = a.address.HasLocation()
	a.snapshot = s.settings.Load(ctx)
}

// resolveZone is skipped when the address has nothing to look up.
func (s *service) resolveZone(_ context.Context, a *attempt) error {
	if !a.located {
		a.match = zone.Match{MatchType: zone.MatchNone}
		return nil
	}

	r := zone.NewResolver(a.snapshot.Settings.DeliveryZones)
	a.match = r.Resolve(a.address.ZipCode, a.address.City, a.address.VillageTown)
	return nil
}

func (s *service) computePricing(_ context.Context, a *attempt) error {
	a.pricing = s.engine.Price(a.cart, a.match, a.snapshot.Settings)
	a.minOrder = pricing.MinimumOrderFor(a.cart.OrderType(), a.pricing.ItemsTotal, a.snapshot.Settings, a.match)
	return nil
}

func (s *service) validateMinimumOrder(_ context.Context, a *attempt) error {
	if a.minOrder.Valid {
		return nil
	}
	return &ValidationError{
		Code:    CodeMinimumOrderNotMet,
		Message: a.minOrder.Message,
		Action:  ActionAddItems,
		Err:     ErrMinimumOrderNotMet,
	}
}

func (s *service) validateAddress(_ context.Context, a *attempt) error {
	if missing := a.address.MissingFields(); len(missing) > 0 {
		return &ValidationError{
			Code:    CodeAddressIncomplete,
			Message: "Please complete your delivery address: " + strings.Join(missing, ", ") + " required.",
			Action:  ActionEditAddress,
			Fields:  missing,
			Err:     ErrAddressIncomplete,
		}
	}

	if !a.match.Deliverable() {
		return &ValidationError{
			Code:    CodeDeliveryUnavailable,
			Message: "Delivery is not available at this address yet. Please choose another address.",
			Action:  ActionEditAddress,
			Err:     ErrDeliveryUnavailable,
		}
	}
	return nil
}

func (s *service) validateStock(ctx context.Context, a *attempt) error {
	violations, err := s.stock.CheckStock(ctx, a.cart)
	if err != nil {
		if inventory.IsTimeout(err) {
			return unavailable("inventory", err)
		}
		return fmt.Errorf("check stock: %w", err)
	}
	if len(violations) == 0 {
		return nil
	}

	code := CodeQuantityExceeded
	msgs := make([]string, len(violations))
	for i, v := range violations {
		if v.Kind == inventory.OutOfStock {
			code = CodeOutOfStock
		}
		msgs[i] = v.Message()
	}

	return &ValidationError{
		Code:       code,
		Message:    strings.Join(msgs, ". ") + ". Please update your cart.",
		Action:     ActionUpdateCart,
		Violations: violations,
		Err:        ErrStockUnavailable,
	}
}

// assembleOrder builds the order snapshot. Blank optional fields are
// trimmed so they are omitted from the stored document.
func (s *service) assembleOrder(_ context.Context, a *attempt) error {
	items := a.cart.Items()
	for i := range items {
		items[i] = sanitizeItem(items[i])
	}

	now := s.now().UTC()
	o := &order.Order{
		OrderNumber:     utils.GenerateOrderNumber(now),
		UserID:          a.req.UserID,
		OrderType:       a.cart.OrderType(),
		RestaurantID:    a.cart.RestaurantID(),
		Items:           items,
		Pricing:         a.pricing,
		DeliveryAddress: a.address,
		Status:          order.StatusPending,
		PaymentMethod:   order.PaymentMethodCOD,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if a.match.Zone != nil {
		o.DeliveryZoneName = a.match.Zone.Name
	}

	a.order = o
	return nil
}

func (s *service) commitOrder(ctx context.Context, a *attempt) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if _, err := s.orders.Create(ctx, a.order); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = unavailable("order store", err)
		}
		return &CommitError{Err: err}
	}
	return nil
}

// reconcileStock runs after the order is committed, so it never fails the
// checkout. Problems are kept on the attempt and reported with the result.
func (s *service) reconcileStock(ctx context.Context, a *attempt) error {
	if a.cart.OrderType() != cart.OrderTypeGrocery {
		return nil
	}

	err := s.stock.Reconcile(context.WithoutCancel(ctx), a.cart.Items())
	if err == nil {
		return nil
	}

	var rerr *inventory.ReconcileError
	if !errors.As(err, &rerr) {
		rerr = &inventory.ReconcileError{
			Failures: []inventory.ItemFailure{{ItemID: "*", Err: err}},
		}
	}
	a.stockErr = rerr

	s.metrics.ReconcileFailures.Inc()
	logger.FromCtx(ctx).Error("stock reconciliation failed",
		zap.String("failure_class", "reconciliation"),
		zap.String("order_id", a.order.IDHex()),
		zap.Strings("item_ids", rerr.ItemIDs()),
		zap.Int("oversold", len(rerr.Oversold)),
		zap.Error(rerr),
	)
	return nil
}

func sanitizeItem(it cart.Item) cart.Item {
	it.ID = strings.TrimSpace(it.ID)
	it.Name = strings.TrimSpace(it.Name)
	it.Category = strings.TrimSpace(it.Category)
	it.Unit = strings.TrimSpace(it.Unit)
	it.DisplayQuantity = strings.TrimSpace(it.DisplayQuantity)
	return it
}
