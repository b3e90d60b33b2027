package domain

// Choice is one entry of an enumerated field: the short code stored in the
// database and the label shown to people.
type Choice struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type ProductCategory string

const (
	CategoryMotorcycles ProductCategory = "1"
	CategoryParts       ProductCategory = "2"
	CategoryApparel     ProductCategory = "3"
	CategoryAccessories ProductCategory = "4"
)

var productCategories = []Choice{
	{Code: string(CategoryMotorcycles), Label: "Motorcycles"},
	{Code: string(CategoryParts), Label: "Parts"},
	{Code: string(CategoryApparel), Label: "Apparel"},
	{Code: string(CategoryAccessories), Label: "Accessories"},
}

func (c ProductCategory) Label() string { return labelOf(productCategories, string(c)) }
func (c ProductCategory) Valid() bool   { return hasCode(productCategories, string(c)) }

// ProductCategories lists the category choices in display order.
func ProductCategories() []Choice { return append([]Choice(nil), productCategories...) }

type ProductSize string

const (
	SizeS   ProductSize = "1"
	SizeM   ProductSize = "2"
	SizeL   ProductSize = "3"
	SizeXL  ProductSize = "4"
	SizeXXL ProductSize = "5"
)

var productSizes = []Choice{
	{Code: string(SizeS), Label: "S"},
	{Code: string(SizeM), Label: "M"},
	{Code: string(SizeL), Label: "L"},
	{Code: string(SizeXL), Label: "XL"},
	{Code: string(SizeXXL), Label: "XXL"},
}

func (s ProductSize) Label() string { return labelOf(productSizes, string(s)) }
func (s ProductSize) Valid() bool   { return hasCode(productSizes, string(s)) }

func ProductSizes() []Choice { return append([]Choice(nil), productSizes...) }

type OrderStatus string

const (
	StatusSubmitted      OrderStatus = "1"
	StatusAssembling     OrderStatus = "2"
	StatusReady          OrderStatus = "3"
	StatusOutForDelivery OrderStatus = "4"
	StatusDelayed        OrderStatus = "5"
	StatusCompleted      OrderStatus = "6"
	StatusCancelled      OrderStatus = "7"
)

var orderStatuses = []Choice{
	{Code: string(StatusSubmitted), Label: "Submitted"},
	{Code: string(StatusAssembling), Label: "Assembling"},
	{Code: string(StatusReady), Label: "Ready"},
	{Code: string(StatusOutForDelivery), Label: "Out for delivery"},
	{Code: string(StatusDelayed), Label: "Delayed"},
	{Code: string(StatusCompleted), Label: "Completed"},
	{Code: string(StatusCancelled), Label: "Cancelled"},
}

func (s OrderStatus) Label() string { return labelOf(orderStatuses, string(s)) }
func (s OrderStatus) Valid() bool   { return hasCode(orderStatuses, string(s)) }

func OrderStatuses() []Choice { return append([]Choice(nil), orderStatuses...) }

func labelOf(choices []Choice, code string) string {
	for _, c := range choices {
		if c.Code == code {
			return c.Label
		}
	}
	return ""
}

func hasCode(choices []Choice, code string) bool {
	for _, c := range choices {
		if c.Code == code {
			return true
		}
	}
	return false
}
