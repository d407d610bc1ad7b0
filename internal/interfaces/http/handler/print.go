package handler

import (
	"errors"
	"net/http"

	billingapp "github.com/billfold/backend/internal/application/billing"
	partnerapp "github.com/billfold/backend/internal/application/partner"
	"github.com/billfold/backend/internal/infrastructure/printing"
	"github.com/billfold/backend/internal/interfaces/http/dto"
	"github.com/billfold/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// PrintHandler renders estimates, invoices and receipts as PDF
type PrintHandler struct {
	BaseHandler
	printer         *printing.DocumentPrinter
	estimateService *billingapp.EstimateService
	invoiceService  *billingapp.InvoiceService
	receiptService  *billingapp.ReceiptService
	clientService   *partnerapp.ClientService
}

// NewPrintHandler creates a new PrintHandler
func NewPrintHandler(
	printer *printing.DocumentPrinter,
	estimateService *billingapp.EstimateService,
	invoiceService *billingapp.InvoiceService,
	receiptService *billingapp.ReceiptService,
	clientService *partnerapp.ClientService,
) *PrintHandler {
	return &PrintHandler{
		printer:         printer,
		estimateService: estimateService,
		invoiceService:  invoiceService,
		receiptService:  receiptService,
		clientService:   clientService,
	}
}

// PrintEstimate handles GET /estimates/:id/pdf
func (h *PrintHandler) PrintEstimate(c *gin.Context) {
	estimateID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	account := accountID(c)

	estimate, err := h.estimateService.GetByID(ctx, account, estimateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	client, err := h.clientService.GetByID(ctx, account, estimate.ClientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pdf, err := h.printer.PrintEstimate(ctx, *estimate, *client)
	if err != nil {
		h.handleRenderError(c, err)
		return
	}

	h.writePDF(c, "estimate-"+estimateID.String()+".pdf", pdf)
}

// PrintInvoice handles GET /invoices/:id/pdf. The rendered document
// includes the invoice's receipt history.
func (h *PrintHandler) PrintInvoice(c *gin.Context) {
	invoiceID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	account := accountID(c)

	invoice, err := h.invoiceService.GetByID(ctx, account, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	client, err := h.clientService.GetByID(ctx, account, invoice.ClientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	receipts, err := h.receiptService.ListByInvoice(ctx, account, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pdf, err := h.printer.PrintInvoice(ctx, *invoice, *client, receipts)
	if err != nil {
		h.handleRenderError(c, err)
		return
	}

	h.writePDF(c, invoice.InvoiceNumber+".pdf", pdf)
}

// PrintReceipt handles GET /receipts/:id/pdf
func (h *PrintHandler) PrintReceipt(c *gin.Context) {
	receiptID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	account := accountID(c)

	receipt, err := h.receiptService.GetByID(ctx, account, receiptID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	client, err := h.clientService.GetByID(ctx, account, receipt.ClientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pdf, err := h.printer.PrintReceipt(ctx, *receipt, *client)
	if err != nil {
		h.handleRenderError(c, err)
		return
	}

	h.writePDF(c, receipt.ReceiptNumber+".pdf", pdf)
}

func (h *PrintHandler) writePDF(c *gin.Context, filename string, pdf []byte) {
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *PrintHandler) handleRenderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := printing.ErrCodeRenderFailed
	var renderErr *printing.RenderError
	if errors.As(err, &renderErr) {
		code = renderErr.Code
		if renderErr.Code == printing.ErrCodeRenderTimeout {
			status = http.StatusGatewayTimeout
		}
	}
	c.JSON(status, dto.NewErrorResponse(code, "document rendering failed", middleware.GetRequestID(c)))
}
