package billing

import (
	"context"
	"time"

	"github.com/billfold/backend/internal/domain/billing"
	"github.com/billfold/backend/internal/domain/partner"
	"github.com/billfold/backend/internal/domain/shared"
	"github.com/billfold/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// EstimateService handles estimate business operations, including the
// estimate to invoice conversion and its undo
type EstimateService struct {
	estimateRepo   billing.EstimateRepository
	invoiceRepo    billing.InvoiceRepository
	clientRepo     partner.ClientRepository
	conversions    billing.ConversionStore
	numbers        billing.NumberGenerator
	eventPublisher shared.EventPublisher
}

// NewEstimateService creates a new EstimateService
func NewEstimateService(
	estimateRepo billing.EstimateRepository,
	invoiceRepo billing.InvoiceRepository,
	clientRepo partner.ClientRepository,
	conversions billing.ConversionStore,
	numbers billing.NumberGenerator,
) *EstimateService {
	return &EstimateService{
		estimateRepo: estimateRepo,
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		conversions:  conversions,
		numbers:      numbers,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *EstimateService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new estimate in draft status
func (s *EstimateService) Create(ctx context.Context, accountID uuid.UUID, req CreateEstimateRequest) (*EstimateResponse, error) {
	// New documents may only reference existing, active clients
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

	estimate, err := billing.NewEstimate(accountID, req.ClientID, req.Title, req.Description, valueobject.NewMoneyUSD(req.Amount), req.EstimateDate)
	if err != nil {
		return nil, err
	}

	if err := s.estimateRepo.Save(ctx, estimate); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, estimate)

	response := ToEstimateResponse(estimate)
	return &response, nil
}

// GetByID retrieves an estimate by ID
func (s *EstimateService) GetByID(ctx context.Context, accountID, estimateID uuid.UUID) (*EstimateResponse, error) {
	estimate, err := s.estimateRepo.FindByIDForAccount(ctx, accountID, estimateID)
	if err != nil {
		return nil, err
	}
	response := ToEstimateResponse(estimate)
	return &response, nil
}

// List retrieves estimates with filtering and pagination
func (s *EstimateService) List(ctx context.Context, accountID uuid.UUID, filter EstimateListFilter) ([]EstimateResponse, int64, error) {
	domainFilter := buildListFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}

	estimates, err := s.estimateRepo.FindAllForAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.estimateRepo.CountForAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToEstimateResponses(estimates), total, nil
}

// Update updates an estimate's editable fields
func (s *EstimateService) Update(ctx context.Context, accountID, estimateID uuid.UUID, req UpdateEstimateRequest) (*EstimateResponse, error) {
	estimate, err := s.estimateRepo.FindByIDForAccount(ctx, accountID, estimateID)
	if err != nil {
		return nil, err
	}

	title := estimate.Title
	if req.Title != nil {
		title = *req.Title
	}
	description := estimate.Description
	if req.Description != nil {
		description = *req.Description
	}
	amount := estimate.GetAmountMoney()
	if req.Amount != nil {
		amount = valueobject.NewMoneyUSD(*req.Amount)
	}
	estimateDate := estimate.EstimateDate
	if req.EstimateDate != nil {
		estimateDate = *req.EstimateDate
	}

	if err := estimate.UpdateDetails(title, description, amount, estimateDate); err != nil {
		return nil, err
	}

	if err := s.estimateRepo.SaveWithLock(ctx, estimate); err != nil {
		return nil, err
	}

	response := ToEstimateResponse(estimate)
	return &response, nil
}

// UpdateStatus moves an estimate to a new status through a user edit.
// The converted status is not reachable this way.
func (s *EstimateService) UpdateStatus(ctx context.Context, accountID, estimateID uuid.UUID, target billing.EstimateStatus) (*EstimateResponse, error) {
	estimate, err := s.estimateRepo.FindByIDForAccount(ctx, accountID, estimateID)
	if err != nil {
		return nil, err
	}

	if err := estimate.UpdateStatus(target); err != nil {
		return nil, err
	}

	if err := s.estimateRepo.SaveWithLock(ctx, estimate); err != nil {
		return nil, err
	}

	response := ToEstimateResponse(estimate)
	return &response, nil
}

// Delete deletes an estimate. Converted estimates must have their
// conversion undone first so no invoice is left orphaned.
func (s *EstimateService) Delete(ctx context.Context, accountID, estimateID uuid.UUID) error {
	estimate, err := s.estimateRepo.FindByIDForAccount(ctx, accountID, estimateID)
	if err != nil {
		return err
	}

	if estimate.IsConverted() {
		return shared.NewDomainError(shared.CodeInvalidState, "Undo the conversion before deleting a converted estimate")
	}

	return s.estimateRepo.DeleteForAccount(ctx, accountID, estimateID)
}

// Convert turns an estimate into an invoice. The estimate is flipped to
// converted and the invoice is inserted in one store transaction; a
// concurrent conversion race is retried once before surfacing.
func (s *EstimateService) Convert(ctx context.Context, accountID, estimateID uuid.UUID) (*InvoiceResponse, error) {
	response, err := s.convertOnce(ctx, accountID, estimateID)
	if err != nil && shared.IsCode(err, shared.CodeConflict) {
		// Re-fetch and re-evaluate once; a lost race usually means the
		// estimate is now converted and the second attempt reports that.
		response, err = s.convertOnce(ctx, accountID, estimateID)
	}
	return response, err
}

func (s *EstimateService) convertOnce(ctx context.Context, accountID, estimateID uuid.UUID) (*InvoiceResponse, error) {
	estimate, err := s.estimateRepo.FindByIDForAccount(ctx, accountID, estimateID)
	if err != nil {
		return nil, err
	}

	if estimate.IsConverted() {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Estimate has already been converted")
	}

	invoiceNumber, err := s.numbers.NextInvoiceNumber(ctx, accountID)
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoiceFromEstimate(estimate, invoiceNumber, time.Time{})
	if err != nil {
		return nil, err
	}

	if err := estimate.MarkConverted(); err != nil {
		return nil, err
	}

	if err := s.conversions.ConvertEstimate(ctx, estimate, invoice); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, estimate)
	s.publishEvents(ctx, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// UndoConversion deletes the invoice produced from the estimate (if any)
// and resets the estimate to approved. Idempotent: repeating the call
// leaves the system in the same state.
func (s *EstimateService) UndoConversion(ctx context.Context, accountID, estimateID uuid.UUID) error {
	estimate, err := s.estimateRepo.FindByIDForAccount(ctx, accountID, estimateID)
	if err != nil {
		return err
	}

	if err := s.conversions.UndoConversion(ctx, accountID, estimateID); err != nil {
		return err
	}

	estimate.ResetToApproved()
	s.publishEvents(ctx, estimate)

	return nil
}

func (s *EstimateService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		// Event delivery is best-effort; the bus logs failures.
		_ = err
	}
	aggregate.ClearDomainEvents()
}

func buildListFilter(page, pageSize int, orderBy, orderDir string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	return filter
}
