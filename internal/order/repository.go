package order

import (
	"context"
	"errors"
	"fmt"

	"bazaar-be/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const CollectionName = "orders"

// Repository is the order store. Orders are appended once and never
// updated by checkout.
type Repository interface {
	Create(ctx context.Context, o *Order) (string, error)
	FindByID(ctx context.Context, id string) (*Order, error)
}

type repository struct {
	coll *mongo.Collection
}

func NewRepository(coll *mongo.Collection) Repository {
	return &repository{coll: coll}
}

// Create inserts o and stores the generated id on it.
func (r *repository) Create(ctx context.Context, o *Order) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "Create"),
		zap.String("user_id", o.UserID),
	)

	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		log.Error("insert order failed", zap.Error(err))
		return "", fmt.Errorf("insert order: %w", err)
	}

	log.Info("order inserted", zap.String("order_id", o.ID.Hex()))
	return o.ID.Hex(), nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidOrderID
	}

	var o Order
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("find order failed",
			zap.String("repo", "Order"),
			zap.String("order_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("find order: %w", err)
	}

	return &o, nil
}
