package billing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/billfold/backend/internal/domain/billing"
	"github.com/billfold/backend/internal/domain/partner"
	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory store backing the full-lifecycle scenario below. The
// conversion path mirrors the SQL store: a conditional status+version
// check on the estimate row decides the race.
type memStore struct {
	mu        sync.Mutex
	clients   map[uuid.UUID]partner.Client
	estimates map[uuid.UUID]billing.Estimate
	invoices  map[uuid.UUID]billing.Invoice
	receipts  map[uuid.UUID]billing.Receipt
	sequences map[billing.SequenceKind]int64
}

func newMemStore() *memStore {
	return &memStore{
		clients:   make(map[uuid.UUID]partner.Client),
		estimates: make(map[uuid.UUID]billing.Estimate),
		invoices:  make(map[uuid.UUID]billing.Invoice),
		receipts:  make(map[uuid.UUID]billing.Receipt),
		sequences: make(map[billing.SequenceKind]int64),
	}
}

func (s *memStore) ConvertEstimate(ctx context.Context, estimate *billing.Estimate, invoice *billing.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.estimates[estimate.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Status == billing.EstimateStatusConverted {
		return shared.ErrConcurrencyConflict
	}
	if stored.Version != estimate.Version {
		return shared.ErrConcurrencyConflict
	}
	estimate.Version++
	s.estimates[estimate.ID] = *estimate
	s.invoices[invoice.ID] = *invoice
	return nil
}

func (s *memStore) UndoConversion(ctx context.Context, accountID, estimateID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, inv := range s.invoices {
		if inv.EstimateID != nil && *inv.EstimateID == estimateID && inv.AccountID == accountID {
			delete(s.invoices, id)
		}
	}
	if stored, ok := s.estimates[estimateID]; ok && stored.AccountID == accountID {
		stored.Status = billing.EstimateStatusApproved
		stored.ConvertedAt = nil
		stored.Version++
		s.estimates[estimateID] = stored
	}
	return nil
}

func (s *memStore) NextInvoiceNumber(ctx context.Context, accountID uuid.UUID) (string, error) {
	return s.next(billing.SequenceKindInvoice), nil
}

func (s *memStore) NextReceiptNumber(ctx context.Context, accountID uuid.UUID) (string, error) {
	return s.next(billing.SequenceKindReceipt), nil
}

func (s *memStore) next(kind billing.SequenceKind) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[kind]++
	return billing.FormatNumber(kind, s.sequences[kind])
}

type memClientRepo struct{ store *memStore }

func (r *memClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if c, ok := r.store.clients[id]; ok {
		return &c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memClientRepo) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*partner.Client, error) {
	client, err := r.FindByID(ctx, id)
	if err != nil || client.AccountID != accountID {
		return nil, shared.ErrNotFound
	}
	return client, nil
}

func (r *memClientRepo) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []partner.Client
	for _, c := range r.store.clients {
		if c.AccountID == accountID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memClientRepo) FindByStatus(ctx context.Context, accountID uuid.UUID, status partner.ClientStatus, filter shared.Filter) ([]partner.Client, error) {
	all, _ := r.FindAllForAccount(ctx, accountID, filter)
	var out []partner.Client
	for _, c := range all {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memClientRepo) Save(ctx context.Context, client *partner.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.clients[client.ID] = *client
	return nil
}

func (r *memClientRepo) SaveWithLock(ctx context.Context, client *partner.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.clients[client.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != client.Version {
		return shared.ErrConcurrencyConflict
	}
	client.Version++
	r.store.clients[client.ID] = *client
	return nil
}

func (r *memClientRepo) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.clients, id)
	return nil
}

func (r *memClientRepo) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	all, _ := r.FindAllForAccount(ctx, accountID, filter)
	return int64(len(all)), nil
}

type memEstimateRepo struct{ store *memStore }

func (r *memEstimateRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.Estimate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if e, ok := r.store.estimates[id]; ok {
		return &e, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memEstimateRepo) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*billing.Estimate, error) {
	estimate, err := r.FindByID(ctx, id)
	if err != nil || estimate.AccountID != accountID {
		return nil, shared.ErrNotFound
	}
	return estimate, nil
}

func (r *memEstimateRepo) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]billing.Estimate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []billing.Estimate
	for _, e := range r.store.estimates {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memEstimateRepo) Save(ctx context.Context, estimate *billing.Estimate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.estimates[estimate.ID] = *estimate
	return nil
}

func (r *memEstimateRepo) SaveWithLock(ctx context.Context, estimate *billing.Estimate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.estimates[estimate.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != estimate.Version {
		return shared.ErrConcurrencyConflict
	}
	estimate.Version++
	r.store.estimates[estimate.ID] = *estimate
	return nil
}

func (r *memEstimateRepo) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.estimates, id)
	return nil
}

func (r *memEstimateRepo) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	all, _ := r.FindAllForAccount(ctx, accountID, filter)
	return int64(len(all)), nil
}

func (r *memEstimateRepo) CountByClient(ctx context.Context, accountID, clientID uuid.UUID) (int64, error) {
	all, _ := r.FindAllForAccount(ctx, accountID, shared.DefaultFilter())
	var n int64
	for _, e := range all {
		if e.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

type memInvoiceRepo struct{ store *memStore }

func (r *memInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if i, ok := r.store.invoices[id]; ok {
		return &i, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memInvoiceRepo) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*billing.Invoice, error) {
	invoice, err := r.FindByID(ctx, id)
	if err != nil || invoice.AccountID != accountID {
		return nil, shared.ErrNotFound
	}
	return invoice, nil
}

func (r *memInvoiceRepo) FindByEstimateID(ctx context.Context, accountID, estimateID uuid.UUID) (*billing.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, i := range r.store.invoices {
		if i.AccountID == accountID && i.EstimateID != nil && *i.EstimateID == estimateID {
			inv := i
			return &inv, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memInvoiceRepo) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []billing.Invoice
	for _, i := range r.store.invoices {
		if i.AccountID == accountID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) Save(ctx context.Context, invoice *billing.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.invoices[invoice.ID] = *invoice
	return nil
}

func (r *memInvoiceRepo) SaveWithLock(ctx context.Context, invoice *billing.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.invoices[invoice.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != invoice.Version {
		return shared.ErrConcurrencyConflict
	}
	invoice.Version++
	r.store.invoices[invoice.ID] = *invoice
	return nil
}

func (r *memInvoiceRepo) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.invoices, id)
	return nil
}

func (r *memInvoiceRepo) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	all, _ := r.FindAllForAccount(ctx, accountID, filter)
	return int64(len(all)), nil
}

func (r *memInvoiceRepo) CountByStatus(ctx context.Context, accountID uuid.UUID, status billing.InvoiceStatus) (int64, error) {
	all, _ := r.FindAllForAccount(ctx, accountID, shared.DefaultFilter())
	var n int64
	for _, i := range all {
		if i.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *memInvoiceRepo) CountByClient(ctx context.Context, accountID, clientID uuid.UUID) (int64, error) {
	all, _ := r.FindAllForAccount(ctx, accountID, shared.DefaultFilter())
	var n int64
	for _, i := range all {
		if i.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

type memReceiptRepo struct{ store *memStore }

func (r *memReceiptRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.Receipt, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if rec, ok := r.store.receipts[id]; ok {
		return &rec, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memReceiptRepo) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*billing.Receipt, error) {
	receipt, err := r.FindByID(ctx, id)
	if err != nil || receipt.AccountID != accountID {
		return nil, shared.ErrNotFound
	}
	return receipt, nil
}

func (r *memReceiptRepo) FindByInvoiceID(ctx context.Context, accountID, invoiceID uuid.UUID) ([]billing.Receipt, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []billing.Receipt{}
	for _, rec := range r.store.receipts {
		if rec.AccountID == accountID && rec.InvoiceID == invoiceID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memReceiptRepo) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]billing.Receipt, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []billing.Receipt
	for _, rec := range r.store.receipts {
		if rec.AccountID == accountID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memReceiptRepo) Save(ctx context.Context, receipt *billing.Receipt) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.receipts[receipt.ID] = *receipt
	return nil
}

func (r *memReceiptRepo) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	all, _ := r.FindAllForAccount(ctx, accountID, filter)
	return int64(len(all)), nil
}

func (r *memReceiptRepo) CountByClient(ctx context.Context, accountID, clientID uuid.UUID) (int64, error) {
	all, _ := r.FindAllForAccount(ctx, accountID, shared.DefaultFilter())
	var n int64
	for _, rec := range all {
		if rec.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

// TestDocumentLifecycle walks the full path: client, estimate, send,
// approve, convert, invoice through to paid, receipt, then undo on a
// second run.
func TestDocumentLifecycle(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	store := newMemStore()
	clientRepo := &memClientRepo{store: store}
	estimateRepo := &memEstimateRepo{store: store}
	invoiceRepo := &memInvoiceRepo{store: store}
	receiptRepo := &memReceiptRepo{store: store}

	estimates := NewEstimateService(estimateRepo, invoiceRepo, clientRepo, store, store)
	invoices := NewInvoiceService(invoiceRepo, receiptRepo, clientRepo, store)
	receipts := NewReceiptService(receiptRepo)

	client, err := partner.NewClient(accountID, "Acme Corp", "billing@acme.test", "", "")
	require.NoError(t, err)
	require.NoError(t, clientRepo.Save(ctx, client))

	estimate, err := estimates.Create(ctx, accountID, CreateEstimateRequest{
		ClientID: client.ID,
		Title:    "Website redesign",
		Amount:   decimal.NewFromFloat(4500),
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", estimate.Status)

	_, err = estimates.UpdateStatus(ctx, accountID, estimate.ID, billing.EstimateStatusSent)
	require.NoError(t, err)
	_, err = estimates.UpdateStatus(ctx, accountID, estimate.ID, billing.EstimateStatusApproved)
	require.NoError(t, err)

	invoice, err := estimates.Convert(ctx, accountID, estimate.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", invoice.InvoiceNumber)
	assert.Equal(t, "pending", invoice.Status)
	require.NotNil(t, invoice.EstimateID)
	assert.Equal(t, estimate.ID, *invoice.EstimateID)
	assert.True(t, invoice.Amount.Equal(decimal.NewFromFloat(4500)))

	// A second conversion of the same estimate must fail and add nothing.
	_, err = estimates.Convert(ctx, accountID, estimate.ID)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
	count, err := invoiceRepo.CountForAccount(ctx, accountID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	for _, target := range []billing.InvoiceStatus{
		billing.InvoiceStatusSent,
		billing.InvoiceStatusViewed,
		billing.InvoiceStatusPaid,
	} {
		_, err = invoices.UpdateStatus(ctx, accountID, invoice.ID, target)
		require.NoError(t, err, "transition to %s", target)
	}

	receipt, err := invoices.GenerateReceipt(ctx, accountID, invoice.ID, GenerateReceiptRequest{
		PaymentMethod: billing.PaymentMethodBankTransfer,
	})
	require.NoError(t, err)
	assert.Equal(t, "RCT-000001", receipt.ReceiptNumber)
	assert.True(t, receipt.Amount.Equal(decimal.NewFromFloat(4500)))

	byInvoice, err := receipts.ListByInvoice(ctx, accountID, invoice.ID)
	require.NoError(t, err)
	assert.Len(t, byInvoice, 1)

	// Undo works even after the invoice lived a full life, and a round
	// trip draws a fresh number rather than reusing the old one.
	require.NoError(t, estimates.UndoConversion(ctx, accountID, estimate.ID))
	refreshed, err := estimates.GetByID(ctx, accountID, estimate.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", refreshed.Status)
	assert.Nil(t, refreshed.ConvertedAt)
	_, err = invoiceRepo.FindByEstimateID(ctx, accountID, estimate.ID)
	assert.True(t, shared.IsCode(err, shared.CodeNotFound))

	second, err := estimates.Convert(ctx, accountID, estimate.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-000002", second.InvoiceNumber)

	// The orphaned receipt survives as a historical record.
	remaining, err := receiptRepo.CountForAccount(ctx, accountID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)
}

// TestConcurrentConversion fires two conversions at the same estimate;
// exactly one invoice may come out the other side.
func TestConcurrentConversion(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	store := newMemStore()
	clientRepo := &memClientRepo{store: store}
	estimateRepo := &memEstimateRepo{store: store}
	invoiceRepo := &memInvoiceRepo{store: store}

	estimates := NewEstimateService(estimateRepo, invoiceRepo, clientRepo, store, store)

	client, err := partner.NewClient(accountID, "Acme Corp", "", "", "")
	require.NoError(t, err)
	require.NoError(t, clientRepo.Save(ctx, client))

	created, err := estimates.Create(ctx, accountID, CreateEstimateRequest{
		ClientID:     client.ID,
		Title:        "Warehouse audit",
		Amount:       decimal.NewFromFloat(900),
		EstimateDate: time.Now(),
	})
	require.NoError(t, err)
	_, err = estimates.UpdateStatus(ctx, accountID, created.ID, billing.EstimateStatusApproved)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = estimates.Convert(ctx, accountID, created.ID)
		}(i)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			failures++
			assert.True(t,
				shared.IsCode(err, shared.CodeInvalidState) || shared.IsCode(err, shared.CodeConflict),
				"unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, failures, "exactly one conversion should lose")

	count, err := invoiceRepo.CountForAccount(ctx, accountID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
