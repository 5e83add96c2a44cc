// Package catalog holds the per-resource configuration consumed by the
// generic list engine: paths, table columns, and filter declarations for
// every storefront resource type. It is pure configuration; behavior
// lives in the listing and cart controllers.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/camarero/camarero/faults"
	"github.com/camarero/camarero/filter"
	"github.com/camarero/camarero/listing"
	"github.com/camarero/camarero/resource"
)

type Definition struct {
	// Type is the singular CLI name (camarero resources list product).
	Type           string
	Title          string
	CollectionPath string
	AddPath        string
	Columns        []listing.Column
	Filters        []filter.Spec
	// Deletable marks resource types whose rows offer a delete action.
	Deletable bool
}

var statusLabels = map[string]string{
	"pending":   "Pending",
	"completed": "Completed",
	"canceled":  "Canceled",
}

func definitions() []Definition {
	return []Definition{
		{
			Type:           "product",
			Title:          "Products",
			CollectionPath: "/products",
			AddPath:        "/products/add",
			Columns: []listing.Column{
				{Key: "name", Header: "Name"},
				{Key: "price", Header: "Price"},
				{Key: "category", Header: "Category"},
				{Key: "description", Header: "Description"},
			},
			Filters: []filter.Spec{
				{Kind: filter.KindText, Name: "name", Label: "Name"},
				{Kind: filter.KindText, Name: "minPrice", Label: "Min price"},
				{Kind: filter.KindText, Name: "maxPrice", Label: "Max price"},
			},
			Deletable: true,
		},
		{
			Type:           "category",
			Title:          "Categories",
			CollectionPath: "/categories",
			AddPath:        "/categories/add",
			Columns: []listing.Column{
				{Key: "name", Header: "Name"},
				{Key: "description", Header: "Description"},
			},
			Filters: []filter.Spec{
				{Kind: filter.KindText, Name: "name", Label: "Name"},
			},
			Deletable: true,
		},
		{
			Type:           "ingredient",
			Title:          "Ingredients",
			CollectionPath: "/ingredients",
			AddPath:        "/ingredients/add",
			Columns: []listing.Column{
				{Key: "name", Header: "Name"},
				{Key: "stock", Header: "Stock"},
				{Key: "unit", Header: "Unit"},
			},
			Filters: []filter.Spec{
				{Kind: filter.KindText, Name: "name", Label: "Name"},
			},
			Deletable: true,
		},
		{
			Type:           "provider",
			Title:          "Providers",
			CollectionPath: "/providers",
			AddPath:        "/providers/add",
			Columns: []listing.Column{
				{Key: "name", Header: "Name"},
				{Key: "email", Header: "Email"},
				{Key: "phone", Header: "Phone"},
			},
			Filters: []filter.Spec{
				{Kind: filter.KindText, Name: "name", Label: "Name"},
			},
			Deletable: true,
		},
		{
			Type:           "promotion",
			Title:          "Promotions",
			CollectionPath: "/promotions",
			AddPath:        "/promotions/add",
			Columns: []listing.Column{
				{Key: "name", Header: "Name"},
				{Key: "discount", Header: "Discount"},
				{Key: "validUntil", Header: "Valid until"},
			},
			Filters: []filter.Spec{
				{Kind: filter.KindText, Name: "name", Label: "Name"},
			},
			Deletable: true,
		},
		{
			Type:           "user",
			Title:          "Users",
			CollectionPath: "/users",
			AddPath:        "/users/add",
			Columns: []listing.Column{
				{Key: "name", Header: "Name"},
				{Key: "email", Header: "Email"},
				{Key: "role", Header: "Role"},
			},
			Filters: []filter.Spec{
				{Kind: filter.KindText, Name: "name", Label: "Name"},
				{Kind: filter.KindSelect, Name: "role", Label: "Role", Options: []filter.Option{
					{Label: "Admin", Value: "admin"},
					{Label: "Client", Value: "client"},
				}},
			},
			Deletable: true,
		},
		{
			Type:           "order",
			Title:          "Orders",
			CollectionPath: "/orders",
			AddPath:        "",
			Columns: []listing.Column{
				{Key: "user_id", Header: "User"},
				{Key: "status", Header: "Status", Render: StatusLabel},
			},
			Filters: []filter.Spec{
				{Kind: filter.KindText, Name: "user_id", Label: "User id"},
				{Kind: filter.KindSelect, Name: "status", Label: "Status", Options: []filter.Option{
					{Label: "Pending", Value: "pending"},
					{Label: "Completed", Value: "completed"},
					{Label: "Canceled", Value: "canceled"},
				}},
			},
			// Orders settle through the cart lifecycle, never through
			// row deletion.
			Deletable: false,
		},
	}
}

// StatusLabel renders an order's status field through the display map,
// falling back to the raw value for statuses the map does not know.
func StatusLabel(item resource.Value) string {
	field, ok := resource.Field(item, "status")
	if !ok {
		return ""
	}
	raw, _ := resource.Stringify(field)
	if label, ok := statusLabels[raw]; ok {
		return label
	}
	return raw
}

// Lookup resolves a resource type by its CLI name.
func Lookup(resourceType string) (Definition, error) {
	name := strings.ToLower(strings.TrimSpace(resourceType))
	for _, definition := range definitions() {
		if definition.Type == name {
			return definition, nil
		}
	}
	return Definition{}, faults.NewTypedError(
		faults.ValidationError,
		fmt.Sprintf("unknown resource type %q (use one of: %s)", resourceType, strings.Join(TypeNames(), ", ")),
		nil,
	)
}

// TypeNames lists the configured resource types, sorted.
func TypeNames() []string {
	defs := definitions()
	names := make([]string, 0, len(defs))
	for _, definition := range defs {
		names = append(names, definition.Type)
	}
	sort.Strings(names)
	return names
}
