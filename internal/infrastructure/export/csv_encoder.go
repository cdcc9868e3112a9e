// Package export serializa los reportes a CSV para abrirlos en planillas
// (separador ";" y BOM UTF-8, como espera Excel en pt-BR).
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/bbh-hotel/lavanderia/internal/application/analytics"
	"github.com/bbh-hotel/lavanderia/internal/application/dto"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
)

var _ analytics.CSVEncoder = (*CSVEncoder)(nil)

const (
	separator       = ';'
	createdAtLayout = "2006-01-02 15:04:05"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// typeLabels etiquetas de tipo impresas en los archivos.
var typeLabels = map[entity.MovementType]string{
	entity.MovementReceived: "ENTRADA",
	entity.MovementIssued:   "SAIDA",
	entity.MovementSent:     "ENVIO",
	entity.MovementReturned: "RETORNO",
	entity.MovementLost:     "PERDA",
}

// CSVEncoder implementa analytics.CSVEncoder.
type CSVEncoder struct{}

// NewCSVEncoder construye el encoder.
func NewCSVEncoder() *CSVEncoder { return &CSVEncoder{} }

// Manifest: cabecera con la fecha, luego una fila por ítem enviado y retornado.
func (e *CSVEncoder) Manifest(m *dto.ManifestDTO) ([]byte, error) {
	rows := [][]string{
		{"Data", m.Date},
		{},
		{"Tipo", "Item", "Quantidade"},
	}
	for _, l := range m.Sent {
		rows = append(rows, []string{typeLabels[entity.MovementSent], l.Name, strconv.FormatInt(l.Quantity, 10)})
	}
	for _, l := range m.Returned {
		rows = append(rows, []string{typeLabels[entity.MovementReturned], l.Name, strconv.FormatInt(l.Quantity, 10)})
	}
	return encode(rows)
}

// Movements: cabecera con el período resuelto y una fila por movimiento.
func (e *CSVEncoder) Movements(r *dto.MovementsReportDTO) ([]byte, error) {
	rows := [][]string{
		{"Período", r.Period.Kind, "Referência", r.Period.Ref, "Início", r.Period.Start, "Fim", r.Period.End},
		{},
		{"Data", "Tipo", "Item", "Quantidade", "Ref", "Observação", "Criado em"},
	}
	for _, m := range r.Movements {
		rows = append(rows, []string{
			m.Date,
			typeLabel(m.Type),
			m.ItemName,
			m.Quantity.String(),
			m.Reference,
			m.Note,
			m.CreatedAt.Format(createdAtLayout),
		})
	}
	return encode(rows)
}

// Stock: saldo actual por ítem activo.
func (e *CSVEncoder) Stock(lines []dto.StockLineDTO) ([]byte, error) {
	rows := [][]string{{"Item", "No Hotel", "Em Lavanderia", "Total"}}
	for _, l := range lines {
		rows = append(rows, []string{l.Name, l.AtHotel.String(), l.AtLaundry.String(), l.Total.String()})
	}
	return encode(rows)
}

func typeLabel(t string) string {
	if label, ok := typeLabels[entity.MovementType(t)]; ok {
		return label
	}
	return strings.ToUpper(t)
}

func encode(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	w.Comma = separator
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}
