package billing

import (
	"context"

	"github.com/billfold/backend/internal/domain/billing"
	"github.com/google/uuid"
)

// ReceiptService is the read side for receipts. Receipts are generated
// through InvoiceService and are immutable afterwards.
type ReceiptService struct {
	receiptRepo billing.ReceiptRepository
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(receiptRepo billing.ReceiptRepository) *ReceiptService {
	return &ReceiptService{receiptRepo: receiptRepo}
}

// GetByID retrieves a receipt by ID
func (s *ReceiptService) GetByID(ctx context.Context, accountID, receiptID uuid.UUID) (*ReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByIDForAccount(ctx, accountID, receiptID)
	if err != nil {
		return nil, err
	}
	response := ToReceiptResponse(receipt)
	return &response, nil
}

// List retrieves receipts with filtering and pagination
func (s *ReceiptService) List(ctx context.Context, accountID uuid.UUID, filter ReceiptListFilter) ([]ReceiptResponse, int64, error) {
	domainFilter := buildListFilter(filter.Page, filter.PageSize, "", "")
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.InvoiceID != nil {
		domainFilter.Filters["invoice_id"] = *filter.InvoiceID
	}

	receipts, err := s.receiptRepo.FindAllForAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.receiptRepo.CountForAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToReceiptResponses(receipts), total, nil
}

// ListByInvoice retrieves every receipt generated for an invoice, in
// generation order
func (s *ReceiptService) ListByInvoice(ctx context.Context, accountID, invoiceID uuid.UUID) ([]ReceiptResponse, error) {
	receipts, err := s.receiptRepo.FindByInvoiceID(ctx, accountID, invoiceID)
	if err != nil {
		return nil, err
	}
	return ToReceiptResponses(receipts), nil
}
