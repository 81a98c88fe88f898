package freight

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"packquote/internal/core/apperror"
	"packquote/internal/domain"
	"packquote/internal/domain/catalogs/client"
	"packquote/internal/domain/catalogs/product"
	"packquote/internal/domain/quotation"
	"packquote/pkg/logger"
)

// QuoteResult is the full carrier response plus the recommendation.
type QuoteResult struct {
	Options        []Option       `json:"options"`
	Recommendation Recommendation `json:"recommendation"`
}

// Service builds shipment manifests from quotations and queries carriers.
type Service struct {
	quoter           Quoter
	products         domain.CatalogRepository[product.Product]
	clients          domain.CatalogRepository[client.Client]
	originPostalCode string
}

// NewService wires the freight quoting service.
func NewService(
	quoter Quoter,
	products domain.CatalogRepository[product.Product],
	clients domain.CatalogRepository[client.Client],
	originPostalCode string,
) *Service {
	return &Service{
		quoter:           quoter,
		products:         products,
		clients:          clients,
		originPostalCode: originPostalCode,
	}
}

// OptionsFor quotes freight for an existing quotation: each item's
// quantity is packed into boxes using the product's packing metadata,
// the client's postal code is the destination, and the grand total is
// declared as invoice value.
func (s *Service) OptionsFor(ctx context.Context, q *quotation.Quotation) (*QuoteResult, error) {
	cl, err := s.clients.GetByID(ctx, q.ClientID)
	if err != nil {
		return nil, err
	}
	if cl.PostalCode == "" {
		return nil, apperror.NewValidation("client has no postal code").
			WithDetail("client_id", cl.ID)
	}

	// The same product may appear on several lines; boxes are computed
	// over the summed quantity, not per line.
	qtyByProduct := make(map[string]int, len(q.Items))
	productOrder := make([]string, 0, len(q.Items))
	for _, item := range q.Items {
		if _, seen := qtyByProduct[item.ProductID]; !seen {
			productOrder = append(productOrder, item.ProductID)
		}
		qtyByProduct[item.ProductID] += item.Quantity
	}

	boxes := make([]BoxManifest, 0, len(productOrder))
	for _, productID := range productOrder {
		prod, err := s.products.GetByID(ctx, productID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return nil, apperror.NewValidation("item references unknown product").
					WithDetail("product_id", productID)
			}
			return nil, err
		}
		dims, err := ParseDimensions(prod.BoxDimensions)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, BoxManifest{
			Count:      BoxesFor(qtyByProduct[productID], prod.UnitsPerBox),
			WeightKg:   prod.BoxWeightKg,
			Dimensions: dims,
		})
	}

	options, err := s.quoter.Quote(ctx, QuoteRequest{
		OriginPostalCode:      s.originPostalCode,
		DestinationPostalCode: strings.ReplaceAll(cl.PostalCode, "-", ""),
		InvoiceValue:          q.GrandTotal,
		Boxes:                 boxes,
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "freight options fetched",
		zap.String("quotation_id", q.ID),
		zap.Int("options", len(options)))

	return &QuoteResult{
		Options:        options,
		Recommendation: Recommend(options, q.ProductTotal),
	}, nil
}
