package printing

import (
	"bytes"
	"context"
	"fmt"

	appbilling "github.com/billfold/backend/internal/application/billing"
	apppartner "github.com/billfold/backend/internal/application/partner"
)

// DocumentPrinter renders billing documents as PDF files
type DocumentPrinter struct {
	renderer PDFRenderer
}

// NewDocumentPrinter creates a DocumentPrinter over a PDF renderer
func NewDocumentPrinter(renderer PDFRenderer) *DocumentPrinter {
	return &DocumentPrinter{renderer: renderer}
}

// PrintEstimate renders an estimate document
func (p *DocumentPrinter) PrintEstimate(ctx context.Context, estimate appbilling.EstimateResponse, client apppartner.ClientResponse) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Estimate appbilling.EstimateResponse
		Client   apppartner.ClientResponse
	}{estimate, client}
	if err := estimateTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render estimate template: %w", err)
	}
	return p.renderer.Render(ctx, buf.String())
}

// PrintInvoice renders an invoice document including its receipt history
func (p *DocumentPrinter) PrintInvoice(ctx context.Context, invoice appbilling.InvoiceResponse, client apppartner.ClientResponse, receipts []appbilling.ReceiptResponse) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Invoice  appbilling.InvoiceResponse
		Client   apppartner.ClientResponse
		Receipts []appbilling.ReceiptResponse
	}{invoice, client, receipts}
	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render invoice template: %w", err)
	}
	return p.renderer.Render(ctx, buf.String())
}

// PrintReceipt renders a receipt document
func (p *DocumentPrinter) PrintReceipt(ctx context.Context, receipt appbilling.ReceiptResponse, client apppartner.ClientResponse) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Receipt appbilling.ReceiptResponse
		Client  apppartner.ClientResponse
	}{receipt, client}
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render receipt template: %w", err)
	}
	return p.renderer.Render(ctx, buf.String())
}
