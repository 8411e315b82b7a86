// Package summary renders split results into shareable plain-text and HTML
// documents, and owns currency formatting.
//
// Both renderers are deterministic: identical input produces byte-identical
// output. Sections appear in a fixed order — bill details, per-person totals
// in people-list order, then payments in calculation order.
package summary

import (
	"fmt"
	"strings"

	"github.com/quicksplit/quicksplit/internal/calculator"
	"github.com/quicksplit/quicksplit/internal/models"
)

const noPayments = "No payments needed."

// RenderText builds the plain-text summary used for sharing and clipboard
// copy.
func RenderText(b *models.Bill, res *calculator.Result) string {
	var sb strings.Builder

	sb.WriteString("📝 QuickSplit Summary\n\n")

	sb.WriteString(fmt.Sprintf("💰 Total Bill: %s\n", FormatEUR(b.Total)))
	sb.WriteString(fmt.Sprintf("👥 Number of People: %d\n", len(b.People)))
	sb.WriteString(fmt.Sprintf("💳 Paid By: %s\n\n", payerName(b)))

	sb.WriteString("👤 Individual Totals:\n")
	for _, p := range b.People {
		sb.WriteString(fmt.Sprintf("%s: %s\n", p.Name, FormatEUR(res.PersonTotals[p.ID])))
	}

	if len(res.Payments) > 0 {
		sb.WriteString("\n💸 Payment Summary:\n")
		for _, payment := range res.Payments {
			sb.WriteString(fmt.Sprintf("%s owes %s %s\n",
				b.PersonName(payment.From),
				b.PersonName(payment.To),
				FormatEUR(payment.Amount),
			))
		}
	} else {
		sb.WriteString("\n" + noPayments + "\n")
	}

	sb.WriteString("\nShared via QuickSplit")
	return sb.String()
}

func payerName(b *models.Bill) string {
	if payer := b.Payer(); payer != nil {
		return payer.Name
	}
	return "Not specified"
}
