package cart

// OrderType partitions carts, zones fees and minimum orders.
type OrderType string

const (
	OrderTypeFood    OrderType = "food"
	OrderTypeGrocery OrderType = "grocery"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeFood || t == OrderTypeGrocery
}

// Item is one cart line. StockQuantity is only known for grocery goods;
// nil means unlimited availability.
type Item struct {
	ID              string  `json:"id" bson:"id"`
	Name            string  `json:"name" bson:"name"`
	Price           float64 `json:"price" bson:"price"`
	Quantity        int     `json:"quantity" bson:"quantity"`
	Category        string  `json:"category,omitempty" bson:"category,omitempty"`
	Unit            string  `json:"unit,omitempty" bson:"unit,omitempty"`
	DisplayQuantity string  `json:"displayQuantity,omitempty" bson:"displayQuantity,omitempty"`
	StockQuantity   *int    `json:"stockQuantity,omitempty" bson:"stockQuantity,omitempty"`
}

func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

func (i Item) StockTracked() bool {
	return i.StockQuantity != nil
}

// View is the JSON shape of a cart. OrderType is null for an empty cart.
type View struct {
	Items        []Item     `json:"items"`
	OrderType    *OrderType `json:"orderType"`
	RestaurantID string     `json:"restaurantId,omitempty"`
	TotalAmount  float64    `json:"totalAmount"`
	ItemCount    int        `json:"itemCount"`
}
