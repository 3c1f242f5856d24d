package trade

import (
	"bytes"
	"context"
	"html/template"

	"github.com/packmart/backend/internal/domain/trade"
)

// SlipRenderer converts packing slip HTML into a printable PDF document
type SlipRenderer interface {
	Render(ctx context.Context, html string, title string) ([]byte, error)
}

var packingSlipTemplate = template.Must(template.New("packing_slip").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #1a1a1a; }
h1 { font-size: 18px; margin-bottom: 2px; }
.meta { color: #555; margin-bottom: 16px; }
.addr { margin-bottom: 20px; white-space: pre-line; }
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #ddd; }
th { border-bottom: 2px solid #1a1a1a; }
td.qty, th.qty { text-align: right; }
.total { margin-top: 12px; text-align: right; font-weight: bold; }
</style>
</head>
<body>
<h1>Packing Slip</h1>
<div class="meta">Order {{.Number}} &middot; {{.CreatedAt.Format "Jan 2, 2006"}}</div>
<div class="addr"><strong>Ship to</strong><br>{{.CustomerName}}<br>{{.ShippingAddr}}</div>
<table>
<thead><tr><th>Item</th><th>SKU</th><th class="qty">Qty</th></tr></thead>
<tbody>
{{- range .Items}}
<tr><td>{{.Title}}</td><td>{{.SKU}}</td><td class="qty">{{.Quantity}}</td></tr>
{{- end}}
</tbody>
</table>
<div class="total">{{.TotalQuantity}} units</div>
</body>
</html>
`))

// RenderPackingSlipHTML renders the packing slip document for an order.
// Prices are intentionally omitted; the slip goes in the box.
func RenderPackingSlipHTML(order *trade.Order) (string, error) {
	var buf bytes.Buffer
	if err := packingSlipTemplate.Execute(&buf, order); err != nil {
		return "", err
	}
	return buf.String(), nil
}
