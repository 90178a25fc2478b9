package analytics

import (
	"context"

	"github.com/jhoicas/seller-analytics/internal/application/dto"
	"github.com/jhoicas/seller-analytics/internal/domain/analytics"
	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// MarketingLoader obtiene los datos de publicidad de una tienda. Nunca falla: degrada a datos vacíos.
type MarketingLoader interface {
	Load(ctx context.Context, store *entity.Store) analytics.MarketingData
}

// ReportPDFGenerator renderiza el reporte como PDF.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, storeName string, report *dto.ReportDTO) ([]byte, error)
}
