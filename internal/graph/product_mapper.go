package graph

import (
	"storefront-be/internal/cart"
	"storefront-be/internal/checkout"
	"storefront-be/internal/graph/model"
	"storefront-be/internal/product"
	"storefront-be/internal/store"
)

func toGraphQLStore(s store.Store) *model.Store {
	return &model.Store{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		Name:      s.Name,
		Address:   s.Address,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
	}
}

func toGraphQLProduct(it *product.Item) *model.Product {
	return &model.Product{
		ID:          it.ProductID,
		StoreID:     it.StoreID,
		Name:        it.Name,
		Description: it.Description,
		Category:    it.Category,
		ImageURL:    it.ImageURL,
		Price:       it.Price,
		Stock:       it.Stock,
	}
}

func toGraphQLProducts(items []product.Item) []*model.Product {
	list := make([]*model.Product, 0, len(items))
	for i := range items {
		list = append(list, toGraphQLProduct(&items[i]))
	}
	return list
}

func toGraphQLCartLines(lines []cart.Line) []*model.CartLine {
	list := make([]*model.CartLine, 0, len(lines))
	for _, l := range lines {
		list = append(list, &model.CartLine{
			ProductID: l.ProductID,
			StoreID:   l.StoreID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}
	return list
}

// toGraphQLCart reports a never-saved cart with a null updatedAt.
func toGraphQLCart(c *cart.Cart) *model.Cart {
	out := &model.Cart{
		Lines:     toGraphQLCartLines(c.Lines),
		Subtotal:  c.Subtotal(),
		ItemCount: c.ItemCount(),
	}
	if !c.UpdatedAt.IsZero() {
		updated := c.UpdatedAt
		out.UpdatedAt = &updated
	}
	return out
}

func toGraphQLSettlement(s *checkout.Settlement) *model.Settlement {
	return &model.Settlement{
		StoreID:        s.StoreID,
		Lines:          toGraphQLCartLines(s.Lines),
		TotalAmount:    s.TotalAmount,
		DiscountAmount: s.DiscountAmount,
		FinalAmount:    s.FinalAmount,
		CouponID:       s.CouponID,
	}
}
