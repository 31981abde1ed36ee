package product

// Item is a product as stocked by one store. Price is in minor units.
type Item struct {
	ProductID   string  `json:"product_id"`
	StoreID     string  `json:"store_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Price       int64   `json:"price"`
	Stock       int     `json:"stock"`
}

// InventoryUpdate edits one store's price and stock for a product. Nil
// fields are left as they are.
type InventoryUpdate struct {
	Price *int64 `json:"price" validate:"omitempty,gte=0"`
	Stock *int   `json:"stock" validate:"omitempty,gte=0"`
}
