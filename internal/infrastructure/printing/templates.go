package printing

import (
	"html/template"
	"time"
)

const baseStyle = `
  body { font-family: Helvetica, Arial, sans-serif; color: #1a1a1a; margin: 0; }
  .document { padding: 24px; }
  .header { display: flex; justify-content: space-between; border-bottom: 2px solid #1a1a1a; padding-bottom: 12px; }
  .header h1 { margin: 0; font-size: 22px; letter-spacing: 1px; }
  .number { font-size: 14px; color: #555; }
  .meta { margin-top: 16px; font-size: 13px; }
  .meta td { padding: 2px 16px 2px 0; }
  .party { margin-top: 20px; font-size: 13px; }
  .party .label { font-size: 11px; text-transform: uppercase; color: #888; }
  .amount-box { margin-top: 28px; padding: 16px; background: #f4f4f4; font-size: 13px; }
  .amount-box .total { font-size: 24px; font-weight: bold; }
  .description { margin-top: 20px; font-size: 13px; white-space: pre-wrap; }
  .lines { margin-top: 20px; width: 100%; border-collapse: collapse; font-size: 13px; }
  .lines th { text-align: left; border-bottom: 1px solid #ccc; padding: 6px 8px; }
  .lines td { border-bottom: 1px solid #eee; padding: 6px 8px; }
  .status { display: inline-block; padding: 2px 10px; border: 1px solid #1a1a1a; border-radius: 10px;
            font-size: 11px; text-transform: uppercase; }
`

var estimateTemplate = template.Must(template.New("estimate").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>` + baseStyle + `</style></head>
<body>
<div class="document">
  <div class="header">
    <h1>Estimate</h1>
    <div><span class="status">{{.Estimate.Status}}</span></div>
  </div>
  <table class="meta">
    <tr><td>Estimate date</td><td>{{formatDate .Estimate.EstimateDate}}</td></tr>
  </table>
  <div class="party">
    <div class="label">Prepared for</div>
    <div>{{.Client.Name}}</div>
    {{if .Client.Email}}<div>{{.Client.Email}}</div>{{end}}
    {{if .Client.Address}}<div>{{.Client.Address}}</div>{{end}}
  </div>
  <div class="amount-box">
    <div>{{.Estimate.Title}}</div>
    <div class="total">${{.Estimate.Amount}}</div>
  </div>
  {{if .Estimate.Description}}<div class="description">{{.Estimate.Description}}</div>{{end}}
</div>
</body>
</html>`))

var invoiceTemplate = template.Must(template.New("invoice").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>` + baseStyle + `</style></head>
<body>
<div class="document">
  <div class="header">
    <h1>Invoice</h1>
    <div>
      <div class="number">{{.Invoice.InvoiceNumber}}</div>
      <span class="status">{{.Invoice.Status}}</span>
    </div>
  </div>
  <table class="meta">
    <tr><td>Issued</td><td>{{formatDate .Invoice.CreatedAt}}</td></tr>
    <tr><td>Due</td><td>{{formatDate .Invoice.DueDate}}</td></tr>
    {{if .Invoice.PaidAt}}<tr><td>Paid</td><td>{{formatDate .Invoice.PaidAt}}</td></tr>{{end}}
  </table>
  <div class="party">
    <div class="label">Billed to</div>
    <div>{{.Client.Name}}</div>
    {{if .Client.Email}}<div>{{.Client.Email}}</div>{{end}}
    {{if .Client.Address}}<div>{{.Client.Address}}</div>{{end}}
  </div>
  <div class="amount-box">
    <div>{{.Invoice.Title}}</div>
    <div class="total">${{.Invoice.Amount}}</div>
  </div>
  {{if .Invoice.Description}}<div class="description">{{.Invoice.Description}}</div>{{end}}
  {{if .Receipts}}
  <table class="lines">
    <tr><th>Receipt</th><th>Issued</th><th>Method</th><th>Amount</th></tr>
    {{range .Receipts}}
    <tr>
      <td>{{.ReceiptNumber}}</td>
      <td>{{formatDate .IssuedAt}}</td>
      <td>{{.PaymentMethod}}</td>
      <td>${{.Amount}}</td>
    </tr>
    {{end}}
  </table>
  {{end}}
</div>
</body>
</html>`))

var receiptTemplate = template.Must(template.New("receipt").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>` + baseStyle + `</style></head>
<body>
<div class="document">
  <div class="header">
    <h1>Receipt</h1>
    <div class="number">{{.Receipt.ReceiptNumber}}</div>
  </div>
  <table class="meta">
    <tr><td>Issued</td><td>{{formatDate .Receipt.IssuedAt}}</td></tr>
    <tr><td>Payment method</td><td>{{.Receipt.PaymentMethod}}</td></tr>
  </table>
  <div class="party">
    <div class="label">Received from</div>
    <div>{{.Client.Name}}</div>
  </div>
  <div class="amount-box">
    <div>Amount received</div>
    <div class="total">${{.Receipt.Amount}}</div>
  </div>
  {{if .Receipt.Notes}}<div class="description">{{.Receipt.Notes}}</div>{{end}}
</div>
</body>
</html>`))

var templateFuncs = template.FuncMap{
	"formatDate": formatDate,
}

func formatDate(value interface{}) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format("January 2, 2006")
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format("January 2, 2006")
	}
	return ""
}
