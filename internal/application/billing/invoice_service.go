package billing

import (
	"context"

	"github.com/billfold/backend/internal/domain/billing"
	"github.com/billfold/backend/internal/domain/partner"
	"github.com/billfold/backend/internal/domain/shared"
	"github.com/billfold/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// InvoiceService handles invoice business operations and receipt generation
type InvoiceService struct {
	invoiceRepo    billing.InvoiceRepository
	receiptRepo    billing.ReceiptRepository
	clientRepo     partner.ClientRepository
	numbers        billing.NumberGenerator
	eventPublisher shared.EventPublisher
	summaryCache   SummaryCache
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	receiptRepo billing.ReceiptRepository,
	clientRepo partner.ClientRepository,
	numbers billing.NumberGenerator,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		receiptRepo: receiptRepo,
		clientRepo:  clientRepo,
		numbers:     numbers,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetSummaryCache enables caching of status summaries
func (s *InvoiceService) SetSummaryCache(cache SummaryCache) {
	s.summaryCache = cache
}

// Create creates a manual invoice in draft status with a freshly drawn number
func (s *InvoiceService) Create(ctx context.Context, accountID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	client, err := s.clientRepo.FindByIDForAccount(ctx, accountID, req.ClientID)
	if err != nil {
		if shared.IsCode(err, shared.CodeNotFound) {
			return nil, shared.NewValidationError("Client does not exist")
		}
		return nil, err
	}
	if !client.IsActive() {
		return nil, shared.NewValidationError("Client is inactive")
	}

	invoiceNumber, err := s.numbers.NextInvoiceNumber(ctx, accountID)
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoice(accountID, req.ClientID, invoiceNumber, req.Title, req.Description, valueobject.NewMoneyUSD(req.Amount), req.DueDate)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invoice)
	s.invalidateSummary(ctx, accountID)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, accountID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForAccount(ctx, accountID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, accountID uuid.UUID, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	domainFilter := buildListFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}

	invoices, err := s.invoiceRepo.FindAllForAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.CountForAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInvoiceResponses(invoices), total, nil
}

// Update updates an invoice's editable fields
func (s *InvoiceService) Update(ctx context.Context, accountID, invoiceID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForAccount(ctx, accountID, invoiceID)
	if err != nil {
		return nil, err
	}

	title := invoice.Title
	if req.Title != nil {
		title = *req.Title
	}
	description := invoice.Description
	if req.Description != nil {
		description = *req.Description
	}
	amount := invoice.GetAmountMoney()
	if req.Amount != nil {
		amount = valueobject.NewMoneyUSD(*req.Amount)
	}
	dueDate := invoice.DueDate
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	if err := invoice.UpdateDetails(title, description, amount, dueDate); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// UpdateStatus moves an invoice along its lifecycle. Unreachable targets
// are rejected, never clamped to the nearest legal status.
func (s *InvoiceService) UpdateStatus(ctx context.Context, accountID, invoiceID uuid.UUID, target billing.InvoiceStatus) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForAccount(ctx, accountID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.Transition(target); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invoice)
	s.invalidateSummary(ctx, accountID)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Delete deletes an invoice. Receipts already generated from it are kept;
// they are immutable records of payments that happened.
func (s *InvoiceService) Delete(ctx context.Context, accountID, invoiceID uuid.UUID) error {
	if _, err := s.invoiceRepo.FindByIDForAccount(ctx, accountID, invoiceID); err != nil {
		return err
	}
	if err := s.invoiceRepo.DeleteForAccount(ctx, accountID, invoiceID); err != nil {
		return err
	}
	s.invalidateSummary(ctx, accountID)
	return nil
}

// GenerateReceipt generates a receipt for an invoice with a freshly drawn
// receipt number. The receipt snapshots the invoice amount as of now;
// later invoice edits do not touch it. The invoice status is left alone,
// marking it paid stays an explicit separate step.
func (s *InvoiceService) GenerateReceipt(ctx context.Context, accountID, invoiceID uuid.UUID, req GenerateReceiptRequest) (*ReceiptResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForAccount(ctx, accountID, invoiceID)
	if err != nil {
		return nil, err
	}

	receiptNumber, err := s.numbers.NextReceiptNumber(ctx, accountID)
	if err != nil {
		return nil, err
	}

	receipt, err := billing.NewReceipt(invoice, receiptNumber, req.PaymentMethod, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, receipt)

	response := ToReceiptResponse(receipt)
	return &response, nil
}

// StatusSummary returns per-status invoice counts for the account.
// Summaries are served from the cache when one is configured; writes to
// invoices invalidate it, and the cache TTL bounds any remaining staleness.
func (s *InvoiceService) StatusSummary(ctx context.Context, accountID uuid.UUID) (*InvoiceStatusSummary, error) {
	if s.summaryCache != nil {
		if cached, ok := s.summaryCache.Get(ctx, accountID); ok {
			return cached, nil
		}
	}

	summary := &InvoiceStatusSummary{}
	counts := []struct {
		status billing.InvoiceStatus
		target *int64
	}{
		{billing.InvoiceStatusDraft, &summary.Draft},
		{billing.InvoiceStatusPending, &summary.Pending},
		{billing.InvoiceStatusSent, &summary.Sent},
		{billing.InvoiceStatusViewed, &summary.Viewed},
		{billing.InvoiceStatusPaid, &summary.Paid},
		{billing.InvoiceStatusPartial, &summary.Partial},
		{billing.InvoiceStatusOverdue, &summary.Overdue},
		{billing.InvoiceStatusArchived, &summary.Archived},
	}
	for _, c := range counts {
		n, err := s.invoiceRepo.CountByStatus(ctx, accountID, c.status)
		if err != nil {
			return nil, err
		}
		*c.target = n
		summary.Total += n
	}

	if s.summaryCache != nil {
		s.summaryCache.Set(ctx, accountID, summary)
	}
	return summary, nil
}

func (s *InvoiceService) invalidateSummary(ctx context.Context, accountID uuid.UUID) {
	if s.summaryCache != nil {
		s.summaryCache.Invalidate(ctx, accountID)
	}
}

func (s *InvoiceService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		_ = err
	}
	aggregate.ClearDomainEvents()
}
