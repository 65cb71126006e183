package domain

type Product struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Price       float64  `json:"price" yaml:"price"`
	Images      []string `json:"images" yaml:"images"`
	SuitableFor []string `json:"suitableFor" yaml:"suitableFor"` // disease tags
	Category    string   `json:"category" yaml:"category"`
	Stock       int      `json:"stock" yaml:"stock"`
}

// SuitableForTag reports whether the product is recommended for the given disease tag.
func (p Product) SuitableForTag(tag string) bool {
	for _, t := range p.SuitableFor {
		if t == tag {
			return true
		}
	}
	return false
}

// FirstImage is the image used for cart lines and order snapshots.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// CartLineItem is one row of a cart. Price and Stock are snapshots taken when the
// line was created.
type CartLineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
	Stock     int     `json:"stock"`
}

func (l CartLineItem) Subtotal() float64 { return l.Price * float64(l.Quantity) }

type Address struct {
	Line1 string `json:"line1" yaml:"line1" validate:"required,min=5"`
	Line2 string `json:"line2,omitempty" yaml:"line2"`
	City  string `json:"city" yaml:"city" validate:"required,min=2"`
	State string `json:"state" yaml:"state" validate:"required,min=2"`
	Zip   string `json:"zip" yaml:"zip" validate:"required,zip"`
}

type ShippingAddress struct {
	FullName     string `json:"fullName" yaml:"fullName" validate:"required,min=2"`
	AddressLine1 string `json:"addressLine1" yaml:"addressLine1" validate:"required,min=5"`
	AddressLine2 string `json:"addressLine2,omitempty" yaml:"addressLine2"`
	City         string `json:"city" yaml:"city" validate:"required,min=2"`
	State        string `json:"state" yaml:"state" validate:"required,min=2"`
	ZipCode      string `json:"zipCode" yaml:"zipCode" validate:"required,zip"`
	PhoneNumber  string `json:"phoneNumber" yaml:"phoneNumber" validate:"required,min=10,phone"`
}
