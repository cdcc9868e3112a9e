package analytics

import (
	"context"
	"fmt"

	"github.com/bbh-hotel/lavanderia/internal/application/dto"
)

// Tipos de contenido de las exportaciones.
const (
	ContentTypeCSV = "text/csv; charset=utf-8"
	ContentTypePDF = "application/pdf"
)

// ExportUseCase convierte los reportes en archivos descargables (CSV y PDF).
type ExportUseCase struct {
	reports *ReportUseCase
	csv     CSVEncoder
	pdf     ManifestPDFGenerator
	header  ManifestHeader
}

// NewExportUseCase construye el caso de uso inyectando los codificadores.
func NewExportUseCase(reports *ReportUseCase, csv CSVEncoder, pdf ManifestPDFGenerator, header ManifestHeader) *ExportUseCase {
	return &ExportUseCase{reports: reports, csv: csv, pdf: pdf, header: header}
}

// ManifestCSV romaneio de la fecha en CSV.
func (uc *ExportUseCase) ManifestCSV(ctx context.Context, date string) (*dto.FileDTO, error) {
	m, err := uc.reports.Manifest(ctx, date)
	if err != nil {
		return nil, err
	}
	data, err := uc.csv.Manifest(m)
	if err != nil {
		return nil, fmt.Errorf("export: romaneio csv: %w", err)
	}
	return &dto.FileDTO{Name: "romaneio_" + m.Date + ".csv", ContentType: ContentTypeCSV, Data: data}, nil
}

// ManifestPDF romaneio de la fecha en PDF.
func (uc *ExportUseCase) ManifestPDF(ctx context.Context, date string) (*dto.FileDTO, error) {
	m, err := uc.reports.Manifest(ctx, date)
	if err != nil {
		return nil, err
	}
	data, err := uc.pdf.GenerateManifestPDF(ctx, uc.header, m)
	if err != nil {
		return nil, fmt.Errorf("export: romaneio pdf: %w", err)
	}
	return &dto.FileDTO{Name: "romaneio_" + m.Date + ".pdf", ContentType: ContentTypePDF, Data: data}, nil
}

// MovementsCSV movimientos del período en CSV.
func (uc *ExportUseCase) MovementsCSV(ctx context.Context, kind, ref string) (*dto.FileDTO, error) {
	r, err := uc.reports.MovementsInPeriod(ctx, kind, ref)
	if err != nil {
		return nil, err
	}
	data, err := uc.csv.Movements(r)
	if err != nil {
		return nil, fmt.Errorf("export: movimientos csv: %w", err)
	}
	name := fmt.Sprintf("movimentos_%s_%s_a_%s.csv", r.Period.Kind, r.Period.Start, r.Period.End)
	return &dto.FileDTO{Name: name, ContentType: ContentTypeCSV, Data: data}, nil
}

// StockCSV inventario actual en CSV.
func (uc *ExportUseCase) StockCSV(ctx context.Context) (*dto.FileDTO, error) {
	lines, err := uc.reports.StockSummary(ctx)
	if err != nil {
		return nil, err
	}
	data, err := uc.csv.Stock(lines)
	if err != nil {
		return nil, fmt.Errorf("export: stock csv: %w", err)
	}
	return &dto.FileDTO{Name: "inventario_atual.csv", ContentType: ContentTypeCSV, Data: data}, nil
}
