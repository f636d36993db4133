package order

import (
	"context"
	"testing"
	"time"

	"bazaar-be/internal/address"
	"bazaar-be/internal/cart"
	"bazaar-be/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func sampleOrder() *Order {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &Order{
		UserID:    "u1",
		OrderType: cart.OrderTypeGrocery,
		Items: []cart.Item{
			{ID: "rice", Name: "Rice", Price: 100, Quantity: 2},
		},
		Pricing: pricing.Breakdown{
			ItemsTotal:    200,
			DeliveryFee:   20,
			TaxAmount:     10,
			TaxPercentage: 5,
			GrandTotal:    230,
			Currency:      pricing.CurrencyINR,
		},
		DeliveryAddress: address.Address{
			Name: "Asha", Phone: "9000000000", Street: "1 MG Road",
			City: "Hyderabad", State: "TS", ZipCode: "500001",
		},
		DeliveryZoneName: "Central",
		Status:           StatusPending,
		PaymentMethod:    PaymentMethodCOD,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func toDoc(t *testing.T, v any) bson.D {
	t.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func TestRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewRepository(mt.Coll)

		o := sampleOrder()
		id, err := repo.Create(context.Background(), o)
		require.NoError(mt, err)
		assert.False(mt, o.ID.IsZero())
		assert.Equal(mt, o.ID.Hex(), id)
	})

	mt.Run("Keeps preset id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewRepository(mt.Coll)

		o := sampleOrder()
		o.ID = primitive.NewObjectID()
		id, err := repo.Create(context.Background(), o)
		require.NoError(mt, err)
		assert.Equal(mt, o.ID.Hex(), id)
	})

	mt.Run("Write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		repo := NewRepository(mt.Coll)

		_, err := repo.Create(context.Background(), sampleOrder())
		assert.Error(mt, err)
		assert.Contains(mt, err.Error(), "insert order")
	})
}

func TestRepository_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Found", func(mt *mtest.T) {
		want := sampleOrder()
		want.ID = primitive.NewObjectID()

		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, toDoc(mt.T, want)),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)
		repo := NewRepository(mt.Coll)

		got, err := repo.FindByID(context.Background(), want.ID.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, want.ID, got.ID)
		assert.Equal(mt, "u1", got.UserID)
		assert.Equal(mt, 230.0, got.Pricing.GrandTotal)
		assert.Equal(mt, PaymentMethodCOD, got.PaymentMethod)
		require.Len(mt, got.Items, 1)
		assert.Nil(mt, got.Items[0].StockQuantity)
	})

	mt.Run("Not found", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewRepository(mt.Coll)

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrOrderNotFound)
	})

	mt.Run("Invalid id", func(mt *mtest.T) {
		repo := NewRepository(mt.Coll)

		_, err := repo.FindByID(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, ErrInvalidOrderID)
	})
}

func TestOrder_DocumentOmitsEmptyOptionalFields(t *testing.T) {
	o := sampleOrder()
	doc := toDoc(t, o).Map()

	_, hasID := doc["_id"]
	assert.False(t, hasID)
	_, hasRestaurant := doc["restaurantId"]
	assert.False(t, hasRestaurant)

	addr := doc["deliveryAddress"].(bson.D).Map()
	_, hasLandmark := addr["landmark"]
	assert.False(t, hasLandmark)
	assert.Equal(t, "500001", addr["zipCode"])

	items := doc["items"].(bson.A)
	item := items[0].(bson.D).Map()
	_, hasStock := item["stockQuantity"]
	assert.False(t, hasStock)
	_, hasUnit := item["unit"]
	assert.False(t, hasUnit)
}
