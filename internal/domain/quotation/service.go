package quotation

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"packquote/internal/core/apperror"
	appcontext "packquote/internal/core/context"
	"packquote/internal/core/entity"
	"packquote/internal/core/id"
	"packquote/internal/core/tx"
	"packquote/internal/core/types"
	"packquote/internal/domain"
	"packquote/internal/domain/catalogs/client"
	"packquote/internal/domain/catalogs/product"
	"packquote/internal/domain/pricing"
	"packquote/pkg/logger"
)

// Numerator issues document numbers inside the current transaction.
type Numerator interface {
	Next(ctx context.Context, prefix string) (string, error)
}

// Auditor records lifecycle events for the audit trail. Failures are
// logged, never propagated; the trail must not break business writes.
type Auditor interface {
	Record(ctx context.Context, action, entityType, entityID string, payload any) error
}

// NumberPrefix is the document number prefix for quotations.
const NumberPrefix = "QT"

// CreateItemInput is one requested line. UnitPrice is tax-inclusive and
// defaults to the product's base price when nil.
type CreateItemInput struct {
	ProductID string
	Quantity  int
	UnitPrice *types.Money
}

// CreateInput is the draft submitted by the caller.
type CreateInput struct {
	ClientID          string
	Entity            pricing.InvoicingEntity
	ManualOrderNumber string
	PaymentTerms      string
	FreightType       string
	Notes             string
	Items             []CreateItemInput
}

// FinalizeInput attaches carrier and freight data. All fields are
// optional: omitted carrier defaults to CarrierToCoordinate and omitted
// freight price to zero, supporting finalize-now-negotiate-later.
type FinalizeInput struct {
	CarrierName       *string
	FreightPrice      *types.Money
	LeadTimeDays      *int
	InvoiceNumber     *string
	PickupDate        *time.Time
	FreightType       *string
	ManualOrderNumber *string
}

// UpdateInput is a partial scalar patch. Applying it recomputes only
// the grand total, never the tax aggregates.
type UpdateInput struct {
	ManualOrderNumber *string
	PaymentTerms      *string
	FreightType       *string
	Notes             *string
	CarrierName       *string
	FreightPrice      *types.Money
	LeadTimeDays      *int
	InvoiceNumber     *string
	PickupDate        *time.Time
}

// Service orchestrates the quotation lifecycle. It is stateless between
// invocations; atomicity comes from the transaction manager.
type Service struct {
	repo       Repository
	products   domain.CatalogRepository[product.Product]
	clients    domain.CatalogRepository[client.Client]
	engine     *pricing.Engine
	exemptions *pricing.ExemptionList
	txManager  tx.Manager
	numbers    Numerator
	auditor    Auditor
}

// NewService wires the quotation lifecycle. auditor may be nil.
func NewService(
	repo Repository,
	products domain.CatalogRepository[product.Product],
	clients domain.CatalogRepository[client.Client],
	engine *pricing.Engine,
	exemptions *pricing.ExemptionList,
	txManager tx.Manager,
	numbers Numerator,
	auditor Auditor,
) *Service {
	return &Service{
		repo:       repo,
		products:   products,
		clients:    clients,
		engine:     engine,
		exemptions: exemptions,
		txManager:  txManager,
		numbers:    numbers,
		auditor:    auditor,
	}
}

// Create validates the draft, prices every line in back-calculation
// mode and persists the aggregate atomically. Nothing is written when
// any item's product cannot be resolved.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Quotation, error) {
	if input.ClientID == "" {
		return nil, apperror.NewValidation("client is required")
	}
	if !input.Entity.Valid() {
		return nil, apperror.NewValidation("unknown invoicing entity").
			WithDetail("entity", string(input.Entity))
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewValidation("quotation must contain at least one item")
	}

	cl, err := s.clients.GetByID(ctx, input.ClientID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewValidation("client not found").
				WithDetail("client_id", input.ClientID)
		}
		return nil, err
	}

	priceInputs := make([]pricing.ItemInput, 0, len(input.Items))
	items := make([]Item, 0, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, apperror.NewValidation("item quantity must be positive").
				WithDetail("product_id", in.ProductID)
		}
		prod, err := s.products.GetByID(ctx, in.ProductID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return nil, apperror.NewValidation("item references unknown product").
					WithDetail("product_id", in.ProductID)
			}
			return nil, err
		}

		unitPrice := prod.BasePrice
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}

		priceInputs = append(priceInputs, pricing.ItemInput{
			ProductID:   prod.ID,
			ProductName: prod.Name,
			Category:    prod.Category,
			Quantity:    in.Quantity,
			UnitPrice:   unitPrice,
		})
		items = append(items, Item{
			ProductID:   prod.ID,
			ProductName: prod.Name,
			Category:    prod.Category,
			Quantity:    in.Quantity,
			UnitPrice:   unitPrice,
		})
	}

	totals, err := s.engine.ComputeTotals(priceInputs, input.Entity, pricing.ModeBackCalc)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Subtotal = totals.Items[i].Subtotal
		items[i].TaxAmount = totals.Items[i].TaxAmount
		items[i].TaxRate = totals.Items[i].Rate
		items[i].UnitPriceExTax = totals.Items[i].UnitPriceExTax
	}

	manual := NormalizeManualNumber(input.ManualOrderNumber)
	exempt := s.exemptions.IsFreightExempt(cl.Name, cl.TradeName)

	q := &Quotation{
		Document:          entity.Document{Date: time.Now()},
		ClientID:          input.ClientID,
		Entity:            input.Entity,
		ManualOrderNumber: manual,
		PaymentTerms:      input.PaymentTerms,
		FreightType:       input.FreightType,
		Notes:             input.Notes,
		Status:            StatusPending,
		ProductTotal:      totals.ProductTotal,
		TaxTotal:          totals.Tax,
		FreightPrice:      types.Zero,
		GrandTotal:        pricing.GrandTotal(totals.ProductTotal, totals.Tax, types.Zero, exempt),
		UserID:            appcontext.UserID(ctx),
		Items:             items,
	}
	q.ID = id.New()
	for i := range q.Items {
		q.Items[i].ID = id.New()
		q.Items[i].QuotationID = q.ID
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if manual != nil {
			exists, err := s.repo.ExistsByManualNumber(ctx, *manual, "")
			if err != nil {
				return err
			}
			if exists {
				return apperror.NewDuplicate("quotation", "manual_order_number", *manual)
			}
		}
		number, err := s.numbers.Next(ctx, NumberPrefix)
		if err != nil {
			return err
		}
		q.Number = number
		return s.repo.Create(ctx, q)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, "quotation.created", q)
	logger.Info(ctx, "quotation created",
		zap.String("id", q.ID),
		zap.String("number", q.Number),
		zap.String("client_id", q.ClientID),
		zap.Int("items", len(q.Items)))
	return q, nil
}

// Finalize attaches carrier and freight data, recomputes tax in forward
// mode over the stored pre-tax subtotals and advances the status per the
// carrier rule. The whole operation is one transaction.
func (s *Service) Finalize(ctx context.Context, quotationID string, input FinalizeInput) (*Quotation, error) {
	if quotationID == "" {
		return nil, apperror.NewValidation("id is required")
	}
	if input.FreightPrice != nil && input.FreightPrice.IsNegative() {
		return nil, apperror.NewValidation("freight price must not be negative")
	}
	if input.LeadTimeDays != nil && *input.LeadTimeDays < 0 {
		return nil, apperror.NewValidation("lead time must not be negative")
	}

	var result *Quotation
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		q, err := s.repo.GetByID(ctx, quotationID)
		if err != nil {
			return err
		}

		if input.ManualOrderNumber != nil {
			if err := s.applyManualNumber(ctx, q, *input.ManualOrderNumber); err != nil {
				return err
			}
		}
		if input.FreightType != nil {
			q.FreightType = *input.FreightType
		}
		if input.InvoiceNumber != nil {
			q.InvoiceNumber = *input.InvoiceNumber
		}
		if input.PickupDate != nil {
			q.PickupDate = input.PickupDate
		}

		carrier := CarrierToCoordinate
		if input.CarrierName != nil && strings.TrimSpace(*input.CarrierName) != "" {
			carrier = strings.TrimSpace(*input.CarrierName)
		}
		q.CarrierName = carrier

		q.FreightPrice = types.Zero
		if input.FreightPrice != nil {
			q.FreightPrice = *input.FreightPrice
		}
		if input.LeadTimeDays != nil {
			q.LeadTimeDays = *input.LeadTimeDays
		}

		priceInputs := make([]pricing.ItemInput, len(q.Items))
		for i, item := range q.Items {
			priceInputs[i] = pricing.ItemInput{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Category:    item.Category,
				Quantity:    item.Quantity,
				Subtotal:    item.Subtotal,
			}
		}
		totals, err := s.engine.ComputeTotals(priceInputs, q.Entity, pricing.ModeForward)
		if err != nil {
			return err
		}
		for i := range q.Items {
			q.Items[i].Subtotal = totals.Items[i].Subtotal
			q.Items[i].TaxAmount = totals.Items[i].TaxAmount
			q.Items[i].TaxRate = totals.Items[i].Rate
			q.Items[i].UnitPriceExTax = totals.Items[i].UnitPriceExTax
		}
		q.ProductTotal = totals.ProductTotal
		q.TaxTotal = totals.Tax

		exempt, err := s.clientExempt(ctx, q.ClientID)
		if err != nil {
			return err
		}
		q.GrandTotal = pricing.GrandTotal(q.ProductTotal, q.TaxTotal, q.FreightPrice, exempt)

		if carrier == CarrierToCoordinate {
			q.Status = StatusPending
		} else {
			q.Status = StatusApproved
		}

		if err := s.repo.Update(ctx, q); err != nil {
			return err
		}
		if err := s.repo.UpdateItems(ctx, q.ID, q.Items); err != nil {
			return err
		}
		result = q
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, "quotation.finalized", result)
	logger.Info(ctx, "quotation finalized",
		zap.String("id", result.ID),
		zap.String("carrier", result.CarrierName),
		zap.String("status", string(result.Status)))
	return result, nil
}

// UpdateStatus overwrites the status directly. Transitions are not
// validated beyond the enum so operators can override automatic moves,
// including cancellation from any state.
func (s *Service) UpdateStatus(ctx context.Context, quotationID string, status Status) (*Quotation, error) {
	if quotationID == "" {
		return nil, apperror.NewValidation("id is required")
	}
	if !status.Valid() {
		return nil, apperror.NewValidation("unknown quotation status").
			WithDetail("status", string(status))
	}

	var result *Quotation
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		q, err := s.repo.GetByID(ctx, quotationID)
		if err != nil {
			return err
		}
		q.Status = status
		if err := s.repo.Update(ctx, q); err != nil {
			return err
		}
		result = q
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, "quotation.status_changed", result)
	logger.Info(ctx, "quotation status updated",
		zap.String("id", result.ID),
		zap.String("status", string(status)))
	return result, nil
}

// Apply patches scalar fields and recomputes only the grand total from
// the stored product and tax aggregates.
func (s *Service) Apply(ctx context.Context, quotationID string, patch UpdateInput) (*Quotation, error) {
	if quotationID == "" {
		return nil, apperror.NewValidation("id is required")
	}
	if patch.FreightPrice != nil && patch.FreightPrice.IsNegative() {
		return nil, apperror.NewValidation("freight price must not be negative")
	}
	if patch.LeadTimeDays != nil && *patch.LeadTimeDays < 0 {
		return nil, apperror.NewValidation("lead time must not be negative")
	}

	var result *Quotation
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		q, err := s.repo.GetByID(ctx, quotationID)
		if err != nil {
			return err
		}

		if patch.ManualOrderNumber != nil {
			if err := s.applyManualNumber(ctx, q, *patch.ManualOrderNumber); err != nil {
				return err
			}
		}
		if patch.PaymentTerms != nil {
			q.PaymentTerms = *patch.PaymentTerms
		}
		if patch.FreightType != nil {
			q.FreightType = *patch.FreightType
		}
		if patch.Notes != nil {
			q.Notes = *patch.Notes
		}
		if patch.CarrierName != nil {
			q.CarrierName = strings.TrimSpace(*patch.CarrierName)
		}
		if patch.FreightPrice != nil {
			q.FreightPrice = *patch.FreightPrice
		}
		if patch.LeadTimeDays != nil {
			q.LeadTimeDays = *patch.LeadTimeDays
		}
		if patch.InvoiceNumber != nil {
			q.InvoiceNumber = *patch.InvoiceNumber
		}
		if patch.PickupDate != nil {
			q.PickupDate = patch.PickupDate
		}

		exempt, err := s.clientExempt(ctx, q.ClientID)
		if err != nil {
			return err
		}
		q.GrandTotal = pricing.GrandTotal(q.ProductTotal, q.TaxTotal, q.FreightPrice, exempt)

		if err := s.repo.Update(ctx, q); err != nil {
			return err
		}
		result = q
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, "quotation.updated", result)
	return result, nil
}

// Delete removes the quotation and its items.
func (s *Service) Delete(ctx context.Context, quotationID string) error {
	if quotationID == "" {
		return apperror.NewValidation("id is required")
	}
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, quotationID)
	})
	if err != nil {
		return err
	}

	if s.auditor != nil {
		if auditErr := s.auditor.Record(ctx, "quotation.deleted", "quotation", quotationID, nil); auditErr != nil {
			logger.Warn(ctx, "audit record failed", zap.Error(auditErr))
		}
	}
	logger.Info(ctx, "quotation deleted", zap.String("id", quotationID))
	return nil
}

// GetByID loads one quotation with its items.
func (s *Service) GetByID(ctx context.Context, quotationID string) (*Quotation, error) {
	if quotationID == "" {
		return nil, apperror.NewValidation("id is required")
	}
	return s.repo.GetByID(ctx, quotationID)
}

// List returns a filtered page of quotations.
func (s *Service) List(ctx context.Context, filter ListFilter) (*domain.ListResult[Quotation], error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperror.NewValidation("unknown quotation status").
			WithDetail("status", string(filter.Status))
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	return s.repo.List(ctx, filter)
}

// CountByStatus reports quotation counts per status within an optional
// creation-date range.
func (s *Service) CountByStatus(ctx context.Context, from, to *time.Time) ([]StatusCount, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, apperror.NewValidation("date range end precedes start")
	}
	return s.repo.CountByStatus(ctx, from, to)
}

func (s *Service) applyManualNumber(ctx context.Context, q *Quotation, raw string) error {
	manual := NormalizeManualNumber(raw)
	if manual != nil {
		exists, err := s.repo.ExistsByManualNumber(ctx, *manual, q.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewDuplicate("quotation", "manual_order_number", *manual)
		}
	}
	q.ManualOrderNumber = manual
	return nil
}

func (s *Service) clientExempt(ctx context.Context, clientID string) (bool, error) {
	cl, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return false, err
	}
	return s.exemptions.IsFreightExempt(cl.Name, cl.TradeName), nil
}

func (s *Service) audit(ctx context.Context, action string, q *Quotation) {
	if s.auditor == nil || q == nil {
		return
	}
	if err := s.auditor.Record(ctx, action, "quotation", q.ID, q); err != nil {
		logger.Warn(ctx, "audit record failed",
			zap.String("action", action),
			zap.String("id", q.ID),
			zap.Error(err))
	}
}
