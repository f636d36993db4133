package cart

import "fmt"

// Cart holds items of a single order type and, for food, a single
// restaurant. totalAmount is recomputed on every mutation.
type Cart struct {
	items        []Item
	orderType    OrderType
	restaurantID string
	totalAmount  float64
}

// New returns an empty cart.
func New() Cart {
	return Cart{}
}

// FromItems builds a cart from a list of items, applying the same checks as Add.
func FromItems(orderType OrderType, restaurantID string, items []Item) (Cart, error) {
	c := New()
	for _, it := range items {
		if _, err := c.Add(it, orderType, restaurantID); err != nil {
			return Cart{}, fmt.Errorf("item %q: %w", it.ID, err)
		}
	}
	return c, nil
}

func (c Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c Cart) Len() int             { return len(c.items) }
func (c Cart) IsEmpty() bool        { return len(c.items) == 0 }
func (c Cart) OrderType() OrderType { return c.orderType }
func (c Cart) RestaurantID() string { return c.restaurantID }
func (c Cart) TotalAmount() float64 { return c.totalAmount }

// Clone returns a cart that shares no backing storage with c.
func (c Cart) Clone() Cart {
	c.items = c.Items()
	return c
}

// Add puts item into the cart. Adding an item of another order type, or a
// food item from another restaurant, empties the cart first; cleared
// reports whether that happened. An existing id has its quantity increased.
func (c *Cart) Add(item Item, orderType OrderType, restaurantID string) (cleared bool, err error) {
	if item.ID == "" {
		return false, ErrInvalidItemID
	}
	if item.Quantity < 1 {
		return false, ErrInvalidQuantity
	}
	if item.Price < 0 {
		return false, ErrInvalidPrice
	}
	if !orderType.Valid() {
		return false, ErrInvalidOrderType
	}
	if orderType == OrderTypeFood && restaurantID == "" {
		return false, ErrRestaurantMissing
	}
	if orderType == OrderTypeGrocery {
		restaurantID = ""
	} else {
		item.StockQuantity = nil
	}

	switching := !c.IsEmpty() &&
		(c.orderType != orderType || c.restaurantID != restaurantID)

	qty := item.Quantity
	idx := -1
	if !switching {
		idx = c.indexOf(item.ID)
		if idx >= 0 {
			qty += c.items[idx].Quantity
		}
	}
	if exceedsStock(orderType, item, qty) {
		return false, ErrQuantityExceedsStock
	}

	if switching {
		c.Clear()
		cleared = true
	}

	c.orderType = orderType
	c.restaurantID = restaurantID

	item.Quantity = qty
	if idx >= 0 {
		c.items[idx] = item
	} else {
		c.items = append(c.items, item)
	}

	c.recompute()
	return cleared, nil
}

// SetQuantity replaces an item's quantity; zero or less removes it.
func (c *Cart) SetQuantity(id string, quantity int) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return ErrCartItemNotFound
	}
	if quantity <= 0 {
		return c.Remove(id)
	}
	if exceedsStock(c.orderType, c.items[idx], quantity) {
		return ErrQuantityExceedsStock
	}

	c.items[idx].Quantity = quantity
	c.recompute()
	return nil
}

// RefreshStock records a newer stock level for an item without touching its
// quantity, so the cart can hold more than is now available.
func (c *Cart) RefreshStock(id string, stock *int) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return ErrCartItemNotFound
	}
	if c.orderType != OrderTypeGrocery {
		return nil
	}
	c.items[idx].StockQuantity = stock
	return nil
}

func (c *Cart) Remove(id string) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return ErrCartItemNotFound
	}

	c.items = append(c.items[:idx], c.items[idx+1:]...)
	if len(c.items) == 0 {
		c.Clear()
		return nil
	}

	c.recompute()
	return nil
}

// Subtract takes ordered's lines out of c. A line whose quantity grew
// since ordered was taken keeps the difference. Nothing is removed when c
// has since switched order type or restaurant, since that already
// dropped the ordered lines.
func (c *Cart) Subtract(ordered Cart) {
	if c.IsEmpty() || c.orderType != ordered.orderType || c.restaurantID != ordered.restaurantID {
		return
	}

	for _, it := range ordered.items {
		idx := c.indexOf(it.ID)
		if idx < 0 {
			continue
		}
		if left := c.items[idx].Quantity - it.Quantity; left > 0 {
			c.items[idx].Quantity = left
			continue
		}
		c.items = append(c.items[:idx], c.items[idx+1:]...)
	}

	if len(c.items) == 0 {
		c.Clear()
		return
	}
	c.recompute()
}

func (c *Cart) Clear() {
	c.items = nil
	c.orderType = ""
	c.restaurantID = ""
	c.totalAmount = 0
}

// View returns the JSON representation of the cart.
func (c Cart) View() View {
	v := View{
		Items:        c.Items(),
		RestaurantID: c.restaurantID,
		TotalAmount:  c.totalAmount,
		ItemCount:    len(c.items),
	}
	if c.orderType != "" {
		t := c.orderType
		v.OrderType = &t
	}
	return v
}

func (c *Cart) recompute() {
	var total float64
	for _, it := range c.items {
		total += it.Subtotal()
	}
	c.totalAmount = total
}

func (c Cart) indexOf(id string) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func exceedsStock(orderType OrderType, item Item, quantity int) bool {
	return orderType == OrderTypeGrocery &&
		item.StockQuantity != nil &&
		quantity > *item.StockQuantity
}
