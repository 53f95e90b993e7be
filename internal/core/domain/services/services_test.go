package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC)

type line struct {
	name  string
	reais float64
	qty   int
}

func makeOrder(t *testing.T, supplier catalog.Supplier, placement order.Placement, lines ...line) *order.Order {
	t.Helper()

	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		price, err := kernel.MoneyFromReais(l.reais)
		require.NoError(t, err)
		dish, err := catalog.NewDish(kernel.NewUUID(), l.name, price, "", supplier)
		require.NoError(t, err)
		item, err := order.NewItem(dish, l.qty)
		require.NoError(t, err)
		items = append(items, item)
	}

	o, err := order.NewOrder(kernel.NewUUID(), supplier, items, placement, placedAt)
	require.NoError(t, err)
	return o
}

func makeSupplier(t *testing.T) catalog.Supplier {
	t.Helper()
	s, err := catalog.NewSupplier(kernel.NewUUID(), "Cozinha da Ana")
	require.NoError(t, err)
	return s
}

func withStatus(t *testing.T, o *order.Order, s order.Status) *order.Order {
	t.Helper()
	require.NoError(t, o.OverrideStatus(s))
	return o
}
