// Package pdf genera el estado de cuenta de un cliente con Maroto v2:
// encabezado con los datos del cliente, tabla de movimientos y deuda
// pendiente al final.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/eymenelneccar/ewf/internal/application/customers"
	"github.com/eymenelneccar/ewf/internal/domain/debt"
	"github.com/eymenelneccar/ewf/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ customers.StatementGenerator = (*StatementGenerator)(nil)

// StatementGenerator implementa customers.StatementGenerator usando Maroto v2.
type StatementGenerator struct{}

// NewStatementGenerator construye el generador.
func NewStatementGenerator() *StatementGenerator { return &StatementGenerator{} }

// GenerateStatement genera el PDF del estado de cuenta y devuelve sus bytes.
func (g *StatementGenerator) GenerateStatement(_ context.Context, customer *entity.Customer, txs []*entity.Transaction) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, tx := range txs {
		m.AddRows(txRow(tx))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(customer))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del cliente (izq) y datos de contacto (der).
func headerRow(customer *entity.Customer) core.Row {
	contact := customer.Phone
	if customer.Email != "" {
		contact += "  " + customer.Email
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Address, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Estado de cuenta", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(contact, props.Text{Size: 9, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("Fecha", 3),
		headerCell("Tipo", 2),
		headerCell("Nota", 4),
		headerCellRight("Monto", 3),
	)
}

func txRow(tx *entity.Transaction) core.Row {
	kind := "Cargo"
	amount := debt.FormatAmount(tx.Amount)
	if tx.Kind == entity.TransactionPayment {
		kind = "Abono"
		amount = "-" + amount
	}
	return row.New(6).Add(
		col.New(3).Add(text.New(tx.CreatedAt.Format("02/01/2006"), props.Text{Size: 8})),
		col.New(2).Add(text.New(kind, props.Text{Size: 8})),
		col.New(4).Add(text.New(tx.Note, props.Text{Size: 8, Color: colorGray})),
		col.New(3).Add(text.New(amount, props.Text{Size: 8, Align: align.Right})),
	)
}

func totalRow(customer *entity.Customer) core.Row {
	total := "0.00"
	if customer.TotalDebt.Valid {
		total = debt.FormatAmount(customer.TotalDebt.Decimal)
	}
	return row.New(8).Add(
		col.New(9).Add(text.New("DEUDA PENDIENTE", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
		})),
		col.New(3).Add(text.New(total, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1, Color: colorPrimary,
		})),
	)
}

func headerCell(label string, size int) core.Col {
	return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8}))
}

func headerCellRight(label string, size int) core.Col {
	return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}))
}
