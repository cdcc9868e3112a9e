package analytics

import (
	"context"

	"github.com/bbh-hotel/lavanderia/internal/application/dto"
	"github.com/bbh-hotel/lavanderia/internal/domain/repository"
)

// SessionRunner abre una sesión de lectura (una conexión del pool) y la libera al terminar fn,
// sea cual sea el resultado. Todas las consultas de un reporte comparten esa sesión.
type SessionRunner interface {
	Read(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// ManifestHeader datos fijos impresos en la cabecera del romaneio.
type ManifestHeader struct {
	Hotel       string
	Responsible string
}

// ManifestPDFGenerator genera el PDF del romaneio diario.
type ManifestPDFGenerator interface {
	GenerateManifestPDF(ctx context.Context, header ManifestHeader, manifest *dto.ManifestDTO) ([]byte, error)
}

// CSVEncoder serializa los reportes exportables.
type CSVEncoder interface {
	Manifest(manifest *dto.ManifestDTO) ([]byte, error)
	Movements(report *dto.MovementsReportDTO) ([]byte, error)
	Stock(lines []dto.StockLineDTO) ([]byte, error)
}
