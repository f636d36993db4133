package order

import (
	"context"

	"bazaar-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetOrder(ctx context.Context, userID, orderID string) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetOrder returns an order owned by userID.
func (s *service) GetOrder(ctx context.Context, userID, orderID string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Order"),
		zap.String("method", "GetOrder"),
		zap.String("order_id", orderID),
	)

	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		log.Warn("order lookup failed", zap.Error(err))
		return nil, err
	}

	if o.UserID != userID {
		log.Warn("order belongs to another user")
		return nil, ErrUnauthorized
	}

	return o, nil
}
