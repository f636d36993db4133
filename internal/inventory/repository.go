package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bazaar-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Repository is the inventory store: one stock counter per item id.
type Repository interface {
	GetStock(ctx context.Context, itemID string) (int, error)
	GetStocks(ctx context.Context, itemIDs []string) (map[string]int, error)
	// CompareAndSetStock writes newStock only if the stored value still
	// equals expected. It reports whether the write happened.
	CompareAndSetStock(ctx context.Context, itemID string, expected, newStock int) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetStock(ctx context.Context, itemID string) (int, error) {
	var stock int
	err := r.db.QueryRowContext(ctx,
		`SELECT stock FROM inventory WHERE item_id = $1`, itemID,
	).Scan(&stock)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrItemNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get stock %s: %w", itemID, err)
	}
	return stock, nil
}

// GetStocks returns stock for the ids present in the store; unknown ids
// are absent from the map.
func (r *repository) GetStocks(ctx context.Context, itemIDs []string) (map[string]int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Inventory"),
		zap.String("method", "GetStocks"),
		zap.Int("item_count", len(itemIDs)),
	)

	stocks := make(map[string]int, len(itemIDs))
	if len(itemIDs) == 0 {
		return stocks, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, stock FROM inventory WHERE item_id = ANY($1)`,
		pq.Array(itemIDs),
	)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, fmt.Errorf("get stocks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    string
			stock int
		)
		if err := rows.Scan(&id, &stock); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		stocks[id] = stock
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stocks: %w", err)
	}

	return stocks, nil
}

func (r *repository) CompareAndSetStock(ctx context.Context, itemID string, expected, newStock int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE inventory
		SET stock = $1, updated_at = NOW()
		WHERE item_id = $2 AND stock = $3
	`, newStock, itemID, expected)
	if err != nil {
		return false, fmt.Errorf("update stock %s: %w", itemID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update stock %s: %w", itemID, err)
	}
	return n == 1, nil
}
