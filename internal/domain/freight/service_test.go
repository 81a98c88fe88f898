package freight

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packquote/internal/core/apperror"
	"packquote/internal/core/types"
	"packquote/internal/domain"
	"packquote/internal/domain/catalogs/client"
	"packquote/internal/domain/catalogs/product"
	"packquote/internal/domain/quotation"
)

type fakeQuoter struct {
	last    QuoteRequest
	options []Option
}

func (f *fakeQuoter) Quote(_ context.Context, req QuoteRequest) ([]Option, error) {
	f.last = req
	return f.options, nil
}

type fakeCatalog[T any] struct {
	items map[string]*T
	name  string
}

func (f *fakeCatalog[T]) Create(context.Context, *T) error     { return nil }
func (f *fakeCatalog[T]) Update(context.Context, *T) error     { return nil }
func (f *fakeCatalog[T]) Delete(context.Context, string) error { return nil }
func (f *fakeCatalog[T]) GetByID(_ context.Context, id string) (*T, error) {
	if item, ok := f.items[id]; ok {
		return item, nil
	}
	return nil, apperror.NewNotFound(f.name, id)
}
func (f *fakeCatalog[T]) GetByCode(_ context.Context, code string) (*T, error) {
	return nil, apperror.NewNotFound(f.name, code)
}
func (f *fakeCatalog[T]) List(context.Context, domain.ListFilter) (*domain.ListResult[T], error) {
	return &domain.ListResult[T]{}, nil
}

func packedProduct(id string, unitsPerBox int) *product.Product {
	p := &product.Product{
		Category:      product.CategoryPot,
		UnitsPerBox:   unitsPerBox,
		BoxWeightKg:   decimal.NewFromFloat(3.5),
		BoxDimensions: "30x20x10",
	}
	p.ID = id
	p.Code = id
	p.Name = "Pot " + id
	return p
}

func directoryClient(id, postalCode string) *client.Client {
	c := &client.Client{PostalCode: postalCode}
	c.ID = id
	c.Code = id
	c.Name = "Client " + id
	return c
}

func newFreightEnv(options []Option) (*Service, *fakeQuoter) {
	quoter := &fakeQuoter{options: options}
	products := &fakeCatalog[product.Product]{name: "product", items: map[string]*product.Product{
		"p-pot": packedProduct("p-pot", 10),
		"p-box": packedProduct("p-box", 25),
	}}
	clients := &fakeCatalog[client.Client]{name: "client", items: map[string]*client.Client{
		"c-1":     directoryClient("c-1", "01000-000"),
		"c-nocep": directoryClient("c-nocep", ""),
	}}
	return NewService(quoter, products, clients, "89000-000"), quoter
}

func shippableQuotation(clientID string, items []quotation.Item) *quotation.Quotation {
	q := &quotation.Quotation{
		ClientID:     clientID,
		ProductTotal: types.MustMoney("100.00"),
		GrandTotal:   types.MustMoney("109.75"),
		Items:        items,
	}
	q.ID = "q-1"
	return q
}

func TestOptionsForGroupsQuantitiesByProduct(t *testing.T) {
	svc, quoter := newFreightEnv([]Option{{CarrierName: "QuickShip", Price: types.MustMoney("9.00")}})

	// Two lines of the same product: 2 + 1 units at 10 per box is one
	// box, not one per line.
	q := shippableQuotation("c-1", []quotation.Item{
		{ProductID: "p-pot", Quantity: 2},
		{ProductID: "p-pot", Quantity: 1},
	})
	result, err := svc.OptionsFor(context.Background(), q)
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, quoter.last.Boxes, 1)
	assert.Equal(t, 1, quoter.last.Boxes[0].Count)
}

func TestOptionsForKeepsDistinctProductsSeparate(t *testing.T) {
	svc, quoter := newFreightEnv(nil)

	q := shippableQuotation("c-1", []quotation.Item{
		{ProductID: "p-pot", Quantity: 11},
		{ProductID: "p-box", Quantity: 1},
	})
	_, err := svc.OptionsFor(context.Background(), q)
	require.NoError(t, err)

	require.Len(t, quoter.last.Boxes, 2)
	assert.Equal(t, 2, quoter.last.Boxes[0].Count)
	assert.Equal(t, 1, quoter.last.Boxes[1].Count)
}

func TestOptionsForNormalizesDestinationPostalCode(t *testing.T) {
	svc, quoter := newFreightEnv(nil)

	q := shippableQuotation("c-1", []quotation.Item{{ProductID: "p-pot", Quantity: 1}})
	_, err := svc.OptionsFor(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, "01000000", quoter.last.DestinationPostalCode)
	assert.Equal(t, "109.75", quoter.last.InvoiceValue.StringFixed(2))
}

func TestOptionsForClientWithoutPostalCode(t *testing.T) {
	svc, _ := newFreightEnv(nil)

	q := shippableQuotation("c-nocep", []quotation.Item{{ProductID: "p-pot", Quantity: 1}})
	_, err := svc.OptionsFor(context.Background(), q)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestOptionsForUnknownProduct(t *testing.T) {
	svc, _ := newFreightEnv(nil)

	q := shippableQuotation("c-1", []quotation.Item{{ProductID: "p-ghost", Quantity: 1}})
	_, err := svc.OptionsFor(context.Background(), q)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "p-ghost", appErr.Details["product_id"])
}
