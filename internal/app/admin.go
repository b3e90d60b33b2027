package app

import (
	"context"

	"github.com/motoshop/motoshop/internal/admin"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/samber/lo"
)

func listOf[T any](fetch func(ctx context.Context) ([]T, error)) admin.ListFunc {
	return func(ctx context.Context) ([]any, error) {
		items, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return lo.ToAnySlice(items), nil
	}
}

// registerModels exposes every shop model on the admin site. Only products
// customise their changelist; the rest show all fields.
func registerModels(site *admin.Site, a *App) error {
	models := []admin.ModelAdmin{
		{
			Name:         "product",
			ListDisplay:  []string{"title", "category", "manufacturer", "stock_quantity", "stocked", "new_product", "final_price"},
			ListFilter:   []string{"manufacturer", "stocked", "category"},
			SearchFields: []string{"manufacturer", "stocked"},
			List: listOf(func(ctx context.Context) ([]*domain.Product, error) {
				return a.ProductService.ListProducts(ctx, domain.ProductFilter{})
			}),
		},
		{Name: "order", ListDisplay: admin.FieldsOf(domain.Order{}), List: listOf(a.OrderService.ListOrders)},
		{Name: "orderline", ListDisplay: admin.FieldsOf(domain.OrderLine{}), List: listOf(a.OrderService.ListOrderLines)},
		{Name: "post", ListDisplay: admin.FieldsOf(domain.Post{}), List: listOf(a.PostService.ListPosts)},
		{Name: "comment", ListDisplay: admin.FieldsOf(domain.Comment{}), List: listOf(a.PostService.ListComments)},
		{Name: "user", ListDisplay: admin.FieldsOf(domain.User{}), List: listOf(a.UserService.ListUsers)},
	}

	for _, m := range models {
		if err := site.Register(m); err != nil {
			return err
		}
	}
	return nil
}
