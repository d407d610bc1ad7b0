package billing

import (
	"github.com/google/uuid"
)

// DocumentType identifies a document collection for view filtering
type DocumentType string

const (
	DocumentTypeAll      DocumentType = "all"
	DocumentTypeEstimate DocumentType = "estimate"
	DocumentTypeInvoice  DocumentType = "invoice"
	DocumentTypeReceipt  DocumentType = "receipt"
)

// StatusFilterAll matches every status
const StatusFilterAll = "all"

// Document is the read-only view the filter layer needs from any billing
// document
type Document interface {
	DocumentClientID() uuid.UUID
	DocumentStatus() string
	DocumentType() DocumentType
}

// ViewFilter describes the active UI filters over a document collection
type ViewFilter struct {
	// ClientID restricts to documents of one client when non-nil
	ClientID *uuid.UUID
	// Status restricts to one status; empty or "all" matches everything
	Status string
	// Type is the active type tab; empty or "all" matches everything,
	// any other value matches only collections of that type
	Type DocumentType
}

// FilterDocuments returns the subset of docs matching the filter. It never
// mutates its input, always returns a non-nil slice, and yields an empty
// result when the type filter names a different collection's type.
func FilterDocuments[D Document](docs []D, filter ViewFilter) []D {
	result := make([]D, 0, len(docs))

	for _, doc := range docs {
		if !matchesType(doc.DocumentType(), filter.Type) {
			continue
		}
		if filter.ClientID != nil && doc.DocumentClientID() != *filter.ClientID {
			continue
		}
		if !matchesStatus(doc.DocumentStatus(), filter.Status) {
			continue
		}
		result = append(result, doc)
	}

	return result
}

// FilterEstimates filters an estimate collection
func FilterEstimates(estimates []Estimate, filter ViewFilter) []Estimate {
	return FilterDocuments(estimates, filter)
}

// FilterInvoices filters an invoice collection
func FilterInvoices(invoices []Invoice, filter ViewFilter) []Invoice {
	return FilterDocuments(invoices, filter)
}

// FilterReceipts filters a receipt collection
func FilterReceipts(receipts []Receipt, filter ViewFilter) []Receipt {
	return FilterDocuments(receipts, filter)
}

func matchesType(docType, filterType DocumentType) bool {
	return filterType == "" || filterType == DocumentTypeAll || filterType == docType
}

func matchesStatus(status, filter string) bool {
	return filter == "" || filter == StatusFilterAll || status == filter
}

// DocumentClientID implements Document for Estimate
func (e Estimate) DocumentClientID() uuid.UUID { return e.ClientID }

// DocumentStatus implements Document for Estimate
func (e Estimate) DocumentStatus() string { return string(e.Status) }

// DocumentType implements Document for Estimate
func (e Estimate) DocumentType() DocumentType { return DocumentTypeEstimate }

// DocumentClientID implements Document for Invoice
func (i Invoice) DocumentClientID() uuid.UUID { return i.ClientID }

// DocumentStatus implements Document for Invoice
func (i Invoice) DocumentStatus() string { return string(i.Status) }

// DocumentType implements Document for Invoice
func (i Invoice) DocumentType() DocumentType { return DocumentTypeInvoice }

// DocumentClientID implements Document for Receipt
func (r Receipt) DocumentClientID() uuid.UUID { return r.ClientID }

// DocumentStatus implements Document for Receipt. Receipts carry no status
// of their own; they always match the empty status and "all".
func (r Receipt) DocumentStatus() string { return "" }

// DocumentType implements Document for Receipt
func (r Receipt) DocumentType() DocumentType { return DocumentTypeReceipt }
