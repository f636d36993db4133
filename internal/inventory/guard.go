package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bazaar-be/internal/cart"
	"bazaar-be/internal/logger"

	"go.uber.org/zap"
)

type ViolationKind string

const (
	OutOfStock       ViolationKind = "out_of_stock"
	QuantityExceeded ViolationKind = "quantity_exceeded"
)

// Violation is a stock problem found before commit.
type Violation struct {
	Kind      ViolationKind `json:"kind"`
	ItemID    string        `json:"itemId"`
	ItemName  string        `json:"itemName"`
	Requested int           `json:"requested"`
	Available int           `json:"available"`
}

func (v Violation) Message() string {
	if v.Kind == OutOfStock {
		return fmt.Sprintf("%s is out of stock", v.ItemName)
	}
	return fmt.Sprintf("Only %d of %s available, you requested %d", v.Available, v.ItemName, v.Requested)
}

// Guard validates stock before commit and reconciles it after.
type Guard struct {
	repo        Repository
	maxAttempts int
	timeout     time.Duration
}

func NewGuard(repo Repository, maxAttempts int, timeout time.Duration) *Guard {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Guard{repo: repo, maxAttempts: maxAttempts, timeout: timeout}
}

// CheckSnapshot validates against the stock recorded on the cart items,
// without touching the inventory store. Food carts always pass.
func (g *Guard) CheckSnapshot(c cart.Cart) []Violation {
	if c.OrderType() != cart.OrderTypeGrocery {
		return nil
	}

	var out []Violation
	for _, it := range c.Items() {
		if !it.StockTracked() {
			continue
		}
		if v, bad := violationFor(it, *it.StockQuantity); bad {
			out = append(out, v)
		}
	}
	return out
}

// CheckStock runs CheckSnapshot and, when that passes, re-checks the
// stock-tracked items against the inventory store. It only reads.
// Timeouts are reported as errors matching IsTimeout.
func (g *Guard) CheckStock(ctx context.Context, c cart.Cart) ([]Violation, error) {
	if c.OrderType() != cart.OrderTypeGrocery {
		return nil, nil
	}
	if v := g.CheckSnapshot(c); len(v) > 0 {
		return v, nil
	}

	tracked := trackedItems(c.Items())
	if len(tracked) == 0 {
		return nil, nil
	}

	ids := make([]string, len(tracked))
	for i, it := range tracked {
		ids[i] = it.ID
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	stocks, err := g.repo.GetStocks(ctx, ids)
	if err != nil {
		return nil, err
	}

	// An item without an inventory row cannot be decremented later, so it
	// counts as out of stock.
	var out []Violation
	for _, it := range tracked {
		if v, bad := violationFor(it, stocks[it.ID]); bad {
			out = append(out, v)
		}
	}
	return out, nil
}

// Reconcile decrements stock for every stock-tracked item. Items are
// written concurrently and all writes settle before it returns; a failed
// item never stops the others. Each write is a compare-and-swap against
// the value just read, retried on conflict.
func (g *Guard) Reconcile(ctx context.Context, items []cart.Item) error {
	tracked := trackedItems(items)
	if len(tracked) == 0 {
		return nil
	}

	type outcome struct {
		failure  *ItemFailure
		oversold *Oversell
	}
	results := make([]outcome, len(tracked))

	var wg sync.WaitGroup
	for i, it := range tracked {
		wg.Add(1)
		go func(i int, it cart.Item) {
			defer wg.Done()
			available, err := g.decrement(ctx, it)
			if err != nil {
				results[i].failure = &ItemFailure{ItemID: it.ID, Err: err}
				return
			}
			if available < it.Quantity {
				results[i].oversold = &Oversell{ItemID: it.ID, Requested: it.Quantity, Available: available}
			}
		}(i, it)
	}
	wg.Wait()

	rerr := &ReconcileError{}
	for _, r := range results {
		if r.failure != nil {
			rerr.Failures = append(rerr.Failures, *r.failure)
		}
		if r.oversold != nil {
			rerr.Oversold = append(rerr.Oversold, *r.oversold)
		}
	}
	if len(rerr.Failures) == 0 && len(rerr.Oversold) == 0 {
		return nil
	}
	return rerr
}

// decrement returns the stock observed by the winning write.
func (g *Guard) decrement(ctx context.Context, it cart.Item) (int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "StockGuard"),
		zap.String("item_id", it.ID),
		zap.Int("quantity", it.Quantity),
	)

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		current, err := g.getStock(ctx, it.ID)
		if err != nil {
			log.Warn("stock read failed", zap.Int("attempt", attempt), zap.Error(err))
			return 0, err
		}

		next := max(0, current-it.Quantity)
		ok, err := g.compareAndSet(ctx, it.ID, current, next)
		if err != nil {
			log.Warn("stock write failed", zap.Int("attempt", attempt), zap.Error(err))
			return 0, err
		}
		if ok {
			log.Debug("stock decremented", zap.Int("from", current), zap.Int("to", next))
			return current, nil
		}

		log.Info("stock changed concurrently, retrying", zap.Int("attempt", attempt))
	}

	return 0, ErrStockConflict
}

func (g *Guard) getStock(ctx context.Context, id string) (int, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()
	return g.repo.GetStock(ctx, id)
}

func (g *Guard) compareAndSet(ctx context.Context, id string, expected, next int) (bool, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()
	return g.repo.CompareAndSetStock(ctx, id, expected, next)
}

func (g *Guard) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func violationFor(it cart.Item, stock int) (Violation, bool) {
	switch {
	case stock <= 0:
		return Violation{Kind: OutOfStock, ItemID: it.ID, ItemName: it.Name, Requested: it.Quantity, Available: 0}, true
	case it.Quantity > stock:
		return Violation{Kind: QuantityExceeded, ItemID: it.ID, ItemName: it.Name, Requested: it.Quantity, Available: stock}, true
	}
	return Violation{}, false
}

func trackedItems(items []cart.Item) []cart.Item {
	out := make([]cart.Item, 0, len(items))
	for _, it := range items {
		if it.StockTracked() {
			out = append(out, it)
		}
	}
	return out
}

// IsTimeout reports whether err came from a collaborator deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
