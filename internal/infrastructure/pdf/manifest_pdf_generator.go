// Package pdf genera el romaneio diario de lavandería (envíos y retornos de una fecha)
// para imprimir y firmar al entregar o recibir la ropa.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Hotel + "Romaneio de Lavanderia"  │  Fecha          │
//	│  Responsable                                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ENVIOS: Ítem | Cantidad  + Total                            │
//	│  RETORNOS: Ítem | Cantidad + Total                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMAS: Conferido por / Recebido por                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

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

	"github.com/bbh-hotel/lavanderia/internal/application/analytics"
	"github.com/bbh-hotel/lavanderia/internal/application/dto"
)

var _ analytics.ManifestPDFGenerator = (*MarotoManifestGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoManifestGenerator implementa analytics.ManifestPDFGenerator usando Maroto v2.
type MarotoManifestGenerator struct{}

// NewMarotoManifestGenerator construye el generador.
func NewMarotoManifestGenerator() *MarotoManifestGenerator { return &MarotoManifestGenerator{} }

// GenerateManifestPDF genera el romaneio y devuelve sus bytes.
func (g *MarotoManifestGenerator) GenerateManifestPDF(
	_ context.Context,
	header analytics.ManifestHeader,
	manifest *dto.ManifestDTO,
) ([]byte, error) {
	title := nonEmpty(header.Hotel, "Hotel") + " — Romaneio de Lavanderia"
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(header.Hotel, "Hotel"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, manifest.Date, header.Responsible))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionRows("Envios", manifest.Sent, "Total de Envios", manifest.TotalSent)...)
	m.AddRows(line.NewRow(6))
	m.AddRows(sectionRows("Retornos", manifest.Returned, "Total de Retornos", manifest.TotalReturned)...)

	m.AddRows(line.NewRow(20))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar romaneio: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha dd/mm/aaaa (der); debajo el responsable.
func headerRow(title, date, responsible string) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Responsável: "+nonEmpty(responsible, "________________"), props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Data", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(displayDate(date), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
		),
	)
}

// sectionRows: título, cabecera, una fila por ítem (o placeholder "—/0") y total.
func sectionRows(title string, lines []dto.ManifestLineDTO, totalLabel string, total int64) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1,
		}))),
		tableHeaderRow(),
	}
	if len(lines) == 0 {
		rows = append(rows, itemRow("—", 0))
	}
	for _, l := range lines {
		rows = append(rows, itemRow(l.Name, l.Quantity))
	}
	rows = append(rows,
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}),
		row.New(7).Add(
			col.New(9).Add(text.New(totalLabel+":", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1, Right: 2,
			})),
			col.New(3).Add(text.New(groupThousands(total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1, Right: 1,
			})),
		),
	)
	return rows
}

// tableHeaderRow: cabecera Item | Quantidade.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a,
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Item", 9, align.Left),
		h("Quantidade", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRow(name string, qty int64) core.Row {
	return row.New(6).Add(
		col.New(9).Add(text.New(name, props.Text{Size: 9, Align: align.Left, Top: 1, Left: 1})),
		col.New(3).Add(text.New(groupThousands(qty), props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1})),
	)
}

// signatureRow: líneas de firma para quien confiere y quien recibe.
func signatureRow() core.Row {
	sig := func(label string) core.Col {
		return col.New(6).Add(text.New(label+": ______________________", props.Text{
			Size: 10, Top: 2, Align: align.Center,
		}))
	}
	return row.New(10).Add(sig("Conferido por"), sig("Recebido por"))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// displayDate convierte "2006-01-02" a "02/01/2006"; otro formato se devuelve tal cual.
func displayDate(s string) string {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return s
	}
	return d.Format("02/01/2006")
}

// groupThousands inserta puntos de miles. Ej: 25000 → "25.000".
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	size := len(s)
	if size <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, size+size/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (size-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
