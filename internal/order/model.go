package order

import (
	"time"

	"bazaar-be/internal/address"
	"bazaar-be/internal/cart"
	"bazaar-be/internal/pricing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

// Status transitions after creation belong to order fulfilment, not checkout.
const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

const PaymentMethodCOD = "COD"

// Order is the persisted order document. Downstream tracking and support
// tools read these field names, so they must not change.
type Order struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrderNumber      string             `json:"orderNumber" bson:"orderNumber"`
	UserID           string             `json:"userId" bson:"userId"`
	OrderType        cart.OrderType     `json:"orderType" bson:"orderType"`
	RestaurantID     string             `json:"restaurantId,omitempty" bson:"restaurantId,omitempty"`
	Items            []cart.Item        `json:"items" bson:"items"`
	Pricing          pricing.Breakdown  `json:"pricing" bson:"pricing"`
	DeliveryAddress  address.Address    `json:"deliveryAddress" bson:"deliveryAddress"`
	DeliveryZoneName string             `json:"deliveryZoneName,omitempty" bson:"deliveryZoneName,omitempty"`
	Status           Status             `json:"status" bson:"status"`
	PaymentMethod    string             `json:"paymentMethod" bson:"paymentMethod"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// IDHex is the order id as exposed to clients.
func (o Order) IDHex() string {
	if o.ID.IsZero() {
		return ""
	}
	return o.ID.Hex()
}
