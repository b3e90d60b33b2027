package domain

// swagger:model domain.Product
type Product struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title" validate:"required,max=255"`
	Code          string          `json:"code" validate:"required,max=10"`
	Category      ProductCategory `json:"category" validate:"required,choice"`
	Manufacturer  string          `json:"manufacturer" validate:"required,max=255"`
	Size          ProductSize     `json:"size,omitempty" validate:"omitempty,choice"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	Stocked       bool            `json:"stocked"`
	Description   string          `json:"description,omitempty"`
	NewProduct    bool            `json:"new_product"`
	RRP           Price           `json:"rrp" validate:"price"`
	FinalPrice    Price           `json:"final_price" validate:"price"`
	Cover         string          `json:"cover,omitempty" validate:"max=100"`
}

func (p *Product) String() string {
	return p.Title
}

// ProductFilter narrows a product listing. Zero values do not filter.
type ProductFilter struct {
	Category     ProductCategory
	Manufacturer string
	Stocked      *bool
	// Search matches manufacturer and stocked flag text, case-insensitively.
	Search string
}
