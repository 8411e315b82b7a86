package summary

import (
	"fmt"
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"github.com/quicksplit/quicksplit/internal/calculator"
	"github.com/quicksplit/quicksplit/internal/models"
)

const summaryCSS = `
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
h1 { color: #a5158c; text-align: center; }
.section { margin-bottom: 20px; border: 1px solid #e5e7eb; border-radius: 8px; padding: 15px; }
.section-title { font-weight: bold; margin-bottom: 10px; color: #1f2937; }
.payment-item { padding: 10px; margin-bottom: 8px; background-color: #f3f4f6; border-radius: 4px; }
.footer { text-align: center; margin-top: 30px; font-size: 0.8em; color: #6b7280; }
`

// RenderHTML builds a standalone HTML document equivalent to the plain-text
// summary, suitable for export or print-to-PDF.
func RenderHTML(b *models.Bill, res *calculator.Result) (string, error) {
	personRows := make([]gomponents.Node, 0, len(b.People))
	for _, p := range b.People {
		personRows = append(personRows, html.P(
			gomponents.Text(fmt.Sprintf("%s: %s", p.Name, FormatEUR(res.PersonTotals[p.ID]))),
		))
	}

	var paymentRows []gomponents.Node
	if len(res.Payments) > 0 {
		for _, payment := range res.Payments {
			paymentRows = append(paymentRows, html.Div(
				html.Class("payment-item"),
				gomponents.Text(fmt.Sprintf("%s owes %s %s",
					b.PersonName(payment.From),
					b.PersonName(payment.To),
					FormatEUR(payment.Amount),
				)),
			))
		}
	} else {
		paymentRows = append(paymentRows, html.P(gomponents.Text(noPayments)))
	}

	doc := html.Doctype(
		html.HTML(
			html.Lang("en"),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1.0")),
				html.TitleEl(gomponents.Text("QuickSplit Summary")),
				html.StyleEl(gomponents.Raw(summaryCSS)),
			),
			html.Body(
				html.H1(gomponents.Text("QuickSplit Summary")),
				html.Div(
					html.Class("section"),
					html.Div(html.Class("section-title"), gomponents.Text("Bill Details")),
					html.P(gomponents.Text("Total Bill: "+FormatEUR(b.Total))),
					html.P(gomponents.Text(fmt.Sprintf("Number of People: %d", len(b.People)))),
					html.P(gomponents.Text("Paid By: "+payerName(b))),
				),
				html.Div(
					html.Class("section"),
					html.Div(html.Class("section-title"), gomponents.Text("Individual Totals")),
					gomponents.Group(personRows),
				),
				html.Div(
					html.Class("section"),
					html.Div(html.Class("section-title"), gomponents.Text("Payment Summary")),
					gomponents.Group(paymentRows),
				),
				html.Div(html.Class("footer"), gomponents.Text("Generated by QuickSplit")),
			),
		),
	)

	var sb strings.Builder
	if err := doc.Render(&sb); err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return sb.String(), nil
}
