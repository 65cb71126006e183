package services

import (
	"fmt"
	"strings"

	"cottoncare/internal/domain"
)

// StockPolicy decides what UpdateQuantity does when asked for more than the stock ceiling.
type StockPolicy string

const (
	StockClamp  StockPolicy = "clamp"
	StockReject StockPolicy = "reject"
)

func ParseStockPolicy(s string) StockPolicy {
	if StockPolicy(strings.ToLower(strings.TrimSpace(s))) == StockReject {
		return StockReject
	}
	return StockClamp
}

type NoticeKind string

const (
	NoticeAdded      NoticeKind = "added"
	NoticeUpdated    NoticeKind = "updated"
	NoticeStockLimit NoticeKind = "stock_limit"
	NoticeRemoved    NoticeKind = "removed"
	NoticeCleared    NoticeKind = "cleared"
	NoticeSaveFailed NoticeKind = "save_failed"
)

// Notice is the user-facing message produced by a cart operation.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
	Warning bool       `json:"warning,omitempty"`
}

// Cart is a reducer over ordered line items, one line per product.
type Cart struct {
	Items  []domain.CartLineItem
	Policy StockPolicy
}

func NewCart(items []domain.CartLineItem, policy StockPolicy) *Cart {
	if items == nil {
		items = []domain.CartLineItem{}
	}
	return &Cart{Items: items, Policy: policy}
}

func (c *Cart) find(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func stockLimit(name string, stock int) *Notice {
	return &Notice{
		Kind:    NoticeStockLimit,
		Title:   "Stock limit reached",
		Message: fmt.Sprintf("Cannot add more %s. Only %d in stock.", name, stock),
		Warning: true,
	}
}

// AddItem adds qty units of p. A total that would exceed p's current stock is
// rejected and the cart is left unchanged. qty <= 0 is a no-op and returns nil.
func (c *Cart) AddItem(p domain.Product, qty int) *Notice {
	if qty <= 0 {
		return nil
	}
	if i := c.find(p.ID); i >= 0 {
		line := &c.Items[i]
		if line.Quantity+qty > p.Stock {
			return stockLimit(p.Name, p.Stock)
		}
		line.Quantity += qty
		line.Stock = p.Stock
		return &Notice{Kind: NoticeUpdated, Title: "Cart updated", Message: fmt.Sprintf("%s quantity updated in cart.", line.Name)}
	}
	if qty > p.Stock {
		return stockLimit(p.Name, p.Stock)
	}
	c.Items = append(c.Items, domain.CartLineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
		Image:     p.FirstImage(),
		Stock:     p.Stock,
	})
	return &Notice{Kind: NoticeAdded, Title: "Added to cart", Message: fmt.Sprintf("%s has been added to your cart.", p.Name)}
}

// UpdateQuantity sets the quantity of a line. n <= 0 removes it; n above the ceiling
// is clamped or rejected depending on the policy. A missing line is a no-op.
func (c *Cart) UpdateQuantity(productID string, n int) *Notice {
	i := c.find(productID)
	if i < 0 {
		return nil
	}
	if n <= 0 {
		return c.RemoveItem(productID)
	}
	line := &c.Items[i]
	if n > line.Stock {
		if c.Policy == StockReject || line.Stock <= 0 {
			return stockLimit(line.Name, line.Stock)
		}
		line.Quantity = line.Stock
		return stockLimit(line.Name, line.Stock)
	}
	line.Quantity = n
	return &Notice{Kind: NoticeUpdated, Title: "Cart updated", Message: fmt.Sprintf("%s quantity set to %d.", line.Name, n)}
}

func (c *Cart) RemoveItem(productID string) *Notice {
	i := c.find(productID)
	if i < 0 {
		return nil
	}
	name := c.Items[i].Name
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return &Notice{Kind: NoticeRemoved, Title: "Item removed", Message: fmt.Sprintf("%s has been removed from your cart.", name)}
}

func (c *Cart) Clear() *Notice {
	c.Items = []domain.CartLineItem{}
	return &Notice{Kind: NoticeCleared, Title: "Cart cleared", Message: "All items have been removed from your cart."}
}

func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	return roundCents(total)
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
