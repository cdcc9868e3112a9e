package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbh-hotel/lavanderia/internal/application/analytics"
	"github.com/bbh-hotel/lavanderia/internal/application/dto"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/testutil"
)

type recordingCSV struct {
	manifest  *dto.ManifestDTO
	movements *dto.MovementsReportDTO
	stock     []dto.StockLineDTO
}

func (r *recordingCSV) Manifest(m *dto.ManifestDTO) ([]byte, error) {
	r.manifest = m
	return []byte("manifest"), nil
}

func (r *recordingCSV) Movements(m *dto.MovementsReportDTO) ([]byte, error) {
	r.movements = m
	return []byte("movements"), nil
}

func (r *recordingCSV) Stock(lines []dto.StockLineDTO) ([]byte, error) {
	r.stock = lines
	return []byte("stock"), nil
}

type stubPDF struct {
	header analytics.ManifestHeader
	err    error
}

func (s *stubPDF) GenerateManifestPDF(_ context.Context, h analytics.ManifestHeader, _ *dto.ManifestDTO) ([]byte, error) {
	s.header = h
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-"), nil
}

func TestExport_FileNamesAndContent(t *testing.T) {
	store := testutil.NewStore()
	a := store.AddItem("FRONHA", true)
	store.AddMovement("2025-06-18", entity.MovementSent, a.ID, "3")
	csv := &recordingCSV{}
	pdf := &stubPDF{}
	header := analytics.ManifestHeader{Hotel: "Bessa Beach Hotel", Responsible: "Governança"}
	uc := analytics.NewExportUseCase(newReports(store), csv, pdf, header)
	ctx := context.Background()

	f, err := uc.ManifestCSV(ctx, "2025-06-18")
	require.NoError(t, err)
	assert.Equal(t, "romaneio_2025-06-18.csv", f.Name)
	assert.Equal(t, analytics.ContentTypeCSV, f.ContentType)
	require.NotNil(t, csv.manifest)
	assert.Equal(t, int64(3), csv.manifest.TotalSent)

	f, err = uc.ManifestPDF(ctx, "2025-06-18")
	require.NoError(t, err)
	assert.Equal(t, "romaneio_2025-06-18.pdf", f.Name)
	assert.Equal(t, analytics.ContentTypePDF, f.ContentType)
	assert.Equal(t, header, pdf.header)

	f, err = uc.MovementsCSV(ctx, "semana", "2025-06-18")
	require.NoError(t, err)
	assert.Equal(t, "movimentos_week_2025-06-16_a_2025-06-22.csv", f.Name)
	assert.Len(t, csv.movements.Movements, 1)

	f, err = uc.StockCSV(ctx)
	require.NoError(t, err)
	assert.Equal(t, "inventario_atual.csv", f.Name)
	assert.Len(t, csv.stock, 1)
}

func TestExport_PDFErrorIsWrapped(t *testing.T) {
	boom := errors.New("fuente no disponible")
	uc := analytics.NewExportUseCase(newReports(testutil.NewStore()), &recordingCSV{}, &stubPDF{err: boom}, analytics.ManifestHeader{})

	_, err := uc.ManifestPDF(context.Background(), "")
	assert.True(t, errors.Is(err, boom))
}
