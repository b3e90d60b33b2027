package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Order.ClientID is not a foreign key: deleting the user leaves the order in place.
type Order struct {
	ID        int64        `json:"id"`
	OrderDate time.Time    `json:"order_date"`
	ClientID  int64        `json:"client_id" validate:"required"`
	Status    OrderStatus  `json:"status" validate:"required,choice"`
	DueDate   time.Time    `json:"due_date" validate:"required"`
	Lines     []*OrderLine `json:"lines,omitempty"`
}

func (o *Order) String() string {
	return strconv.FormatInt(o.ID, 10)
}

type OrderLine struct {
	ID        int64    `json:"id"`
	OrderID   int64    `json:"order_id" validate:"required"`
	ProductID int64    `json:"product_id" validate:"required"`
	Quantity  int      `json:"quantity" validate:"min=1"`
	Product   *Product `json:"product,omitempty" validate:"-"`
}

func (l *OrderLine) String() string {
	title := ""
	if l.Product != nil {
		title = l.Product.Title
	}
	return fmt.Sprintf("%s - %d", title, l.Quantity)
}
