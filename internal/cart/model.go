package cart

import "time"

// Line is one product in a customer's cart. UnitPrice is the store price at
// the time the line was last touched; checkout reprices from inventory.
type Line struct {
	ProductID string `json:"product_id"`
	StoreID   string `json:"store_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

type Cart struct {
	OwnerID   string    `json:"owner_id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Cart) Subtotal() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) find(storeID, productID string) int {
	for i, l := range c.Lines {
		if l.StoreID == storeID && l.ProductID == productID {
			return i
		}
	}
	return -1
}

type AddItemInput struct {
	StoreID   string `json:"store_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=99"`
}

type UpdateQuantityInput struct {
	StoreID  string `json:"store_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0,lte=99"`
}
