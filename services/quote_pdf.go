// services/quote_pdf.go
package services

import (
	"fmt"
	"strconv"

	"negoziocucine-backend/models"
	"negoziocucine-backend/utils"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// RenderQuotePDF builds the printable quote document. The quote must come
// with Customer and Items (with Product) preloaded, items already in
// display order. A quote with no items renders an empty table and a
// total of 0.00.
func RenderQuotePDF(q *models.Quote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRow(14, text.NewCol(12, "QUOTE", props.Text{Size: 20, Style: fontstyle.Bold, Align: align.Center}))
	m.AddRow(6, text.NewCol(12, "No. "+q.QuoteNumber, props.Text{Size: 10, Align: align.Center}))
	m.AddRow(6, text.NewCol(12, "Date: "+utils.FormatDate(q.CreatedAt), props.Text{Size: 10, Align: align.Center}))

	m.AddRow(10, text.NewCol(12, "Customer", props.Text{Size: 12, Style: fontstyle.Bold, Top: 4}))
	m.AddRow(5, text.NewCol(12, q.Customer.FullName(), props.Text{Size: 10}))
	m.AddRow(5, text.NewCol(12, "Email: "+q.Customer.Email, props.Text{Size: 10}))
	m.AddRow(5, text.NewCol(12, "Phone: "+q.Customer.Phone, props.Text{Size: 10}))
	if q.Customer.Address != "" {
		m.AddRow(5, text.NewCol(12, fmt.Sprintf("Address: %s, %s %s", q.Customer.Address, q.Customer.PostalCode, q.Customer.City), props.Text{Size: 10}))
	}

	m.AddRow(10, text.NewCol(12, "Items", props.Text{Size: 12, Style: fontstyle.Bold, Top: 4}))
	m.AddRow(7,
		text.NewCol(6, "Product", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, "Qty", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center}),
		text.NewCol(2, "Unit Price", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRows(line.NewRow(2))

	subtotal := decimal.Zero
	for i := range q.Items {
		item := &q.Items[i]
		name := item.Product.Name
		if item.Note != "" {
			name += " - " + item.Note
		}
		lineTotal := item.LineTotal()
		subtotal = subtotal.Add(lineTotal)
		m.AddRow(6,
			text.NewCol(6, name, props.Text{Size: 9}),
			text.NewCol(2, strconv.Itoa(item.Quantity), props.Text{Size: 9, Align: align.Center}),
			text.NewCol(2, formatMoney(item.UnitPriceFinal), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatMoney(lineTotal), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRows(line.NewRow(2))

	total := ComputeTotal(q.Items, q.DiscountPercentage)
	if q.DiscountPercentage.GreaterThan(decimal.Zero) {
		m.AddRow(6, text.NewCol(12, "Subtotal: "+formatMoney(subtotal), props.Text{Size: 10, Align: align.Right, Top: 2}))
		m.AddRow(6, text.NewCol(12, fmt.Sprintf("Discount %s%%: -%s", q.DiscountPercentage.String(), formatMoney(subtotal.Sub(total))), props.Text{Size: 10, Align: align.Right}))
	}
	m.AddRow(10, text.NewCol(12, "TOTAL: "+formatMoney(total), props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right, Top: 2}))

	if q.Notes != "" {
		m.AddRow(8, text.NewCol(12, "Notes", props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}))
		m.AddRow(10, text.NewCol(12, q.Notes, props.Text{Size: 9}))
	}

	m.AddRow(8, text.NewCol(12, shopName(), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center, Top: 4}))
	m.AddRow(4, text.NewCol(12, shopAddress(), props.Text{Size: 8, Align: align.Center}))
	m.AddRow(4, text.NewCol(12, fmt.Sprintf("Tel: %s | Email: %s", shopPhone(), shopEmail()), props.Text{Size: 8, Align: align.Center}))
	m.AddRow(4, text.NewCol(12, "VAT: "+shopVAT(), props.Text{Size: 8, Align: align.Center}))
	m.AddRow(6, text.NewCol(12, fmt.Sprintf("This quote is valid for %d days from the date of issue.", q.ValidityDays), props.Text{Size: 8, Align: align.Center, Top: 2}))

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func formatMoney(d decimal.Decimal) string {
	return "EUR " + d.StringFixed(2)
}
