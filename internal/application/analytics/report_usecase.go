// Package analytics contiene los casos de uso del reporte de ganancias y pérdidas del vendedor.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/seller-analytics/internal/application/dto"
	"github.com/jhoicas/seller-analytics/internal/domain"
	"github.com/jhoicas/seller-analytics/internal/domain/analytics"
	"github.com/jhoicas/seller-analytics/internal/domain/entity"
	"github.com/jhoicas/seller-analytics/internal/domain/repository"
	"github.com/jhoicas/seller-analytics/pkg/logger"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 366
)

// ReportRepositories puertos de lectura que usa el reporte.
type ReportRepositories struct {
	Stores   repository.StoreRepository
	Orders   repository.OrderRepository
	Costs    repository.ProductCostRepository
	Expenses repository.ExpenseRepository
}

// ReportUseCase orquesta la carga de datos y el motor de agregación.
//
// Lecturas secuenciales: tienda -> costos -> pedidos -> gastos -> publicidad.
// Cada invocación recalcula todo desde cero; no hay estado compartido entre requests.
type ReportUseCase struct {
	repos     ReportRepositories
	marketing MarketingLoader
	pdf       ReportPDFGenerator
	log       *logger.Logger
	opts      analytics.Options
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil si no se expone la exportación.
func NewReportUseCase(
	repos ReportRepositories,
	marketing MarketingLoader,
	pdf ReportPDFGenerator,
	log *logger.Logger,
	opts analytics.Options,
) *ReportUseCase {
	return &ReportUseCase{
		repos:     repos,
		marketing: marketing,
		pdf:       pdf,
		log:       log,
		opts:      opts,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// GetReport construye el reporte completo para la tienda y el rango pedido.
func (uc *ReportUseCase) GetReport(ctx context.Context, req dto.ReportRequest) (*dto.ReportDTO, error) {
	rep, reportID, err := uc.build(ctx, req)
	if err != nil {
		return nil, err
	}
	return toReportDTO(rep, reportID, uc.opts.OffsetHours), nil
}

// ExportPDF construye el reporte y lo renderiza como PDF.
func (uc *ReportUseCase) ExportPDF(ctx context.Context, req dto.ReportRequest) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("analytics.ExportPDF: generador PDF no configurado")
	}
	rep, reportID, err := uc.build(ctx, req)
	if err != nil {
		return nil, err
	}
	out, err := uc.pdf.GenerateReportPDF(ctx, rep.Store.Name, toReportDTO(rep, reportID, uc.opts.OffsetHours))
	if err != nil {
		return nil, fmt.Errorf("analytics.ExportPDF: %w", err)
	}
	return out, nil
}

func (uc *ReportUseCase) build(ctx context.Context, req dto.ReportRequest) (*analytics.Report, string, error) {
	storeID := strings.TrimSpace(req.StoreID)
	if storeID == "" {
		return nil, "", fmt.Errorf("%w: storeId requerido", domain.ErrInvalidInput)
	}
	w, err := uc.resolveWindow(req.DateFrom, req.DateTo)
	if err != nil {
		return nil, "", err
	}

	reportID := uuid.NewString()
	log := uc.log.Child(uc.log.With().
		Str("report_id", reportID).
		Str("store_id", storeID).
		Str("date_from", w.FromKey()).
		Str("date_to", w.ToKey()))

	store, err := uc.repos.Stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, "", fmt.Errorf("analytics.GetReport: tienda: %w", err)
	}
	if store == nil {
		return nil, "", domain.ErrStoreNotFound
	}

	costs, err := uc.repos.Costs.ListByStore(ctx, storeID)
	if err != nil {
		return nil, "", fmt.Errorf("analytics.GetReport: costos: %w", err)
	}

	from, to := w.Bounds(uc.opts.OffsetHours)
	orders, err := uc.repos.Orders.ListForPeriod(ctx, storeID, from, to)
	if err != nil {
		return nil, "", fmt.Errorf("analytics.GetReport: pedidos: %w", err)
	}

	expenses, err := uc.loadExpenses(ctx, log, storeID, w)
	if err != nil {
		return nil, "", err
	}

	var marketing analytics.MarketingData
	if uc.marketing != nil {
		marketing = uc.marketing.Load(ctx, store)
	} else {
		marketing = analytics.NewMarketingData(nil, nil)
	}

	malformed := 0
	for _, o := range orders {
		if o.ItemsMalformed {
			malformed++
		}
	}
	if malformed > 0 {
		log.Warn().Int("orders", malformed).Msg("pedidos con lista de ítems ilegible: sin desglose por producto")
	}

	rep := analytics.Assemble(analytics.Input{
		Store:     *store,
		Orders:    orders,
		Costs:     costs,
		Expenses:  expenses,
		Marketing: marketing,
		Window:    w,
	}, uc.opts)

	log.Info().
		Int("orders", len(orders)).
		Int("fulfilled", rep.Totals.Orders).
		Int("campaigns", len(marketing.Campaigns)).
		Msg("reporte generado")
	return rep, reportID, nil
}

// resolveWindow aplica los valores por defecto (hoy en la zona del negocio, 30 días) y valida el rango.
func (uc *ReportUseCase) resolveWindow(dateFrom, dateTo string) (analytics.Window, error) {
	dateFrom, dateTo = strings.TrimSpace(dateFrom), strings.TrimSpace(dateTo)
	if dateTo == "" {
		dateTo = analytics.BucketKey(uc.now(), uc.opts.OffsetHours)
	}
	if dateFrom == "" {
		to, err := time.Parse(analytics.DateLayout, dateTo)
		if err != nil {
			return analytics.Window{}, fmt.Errorf("%w: dateTo inválido (YYYY-MM-DD): %s", domain.ErrInvalidInput, dateTo)
		}
		dateFrom = to.AddDate(0, 0, -(defaultWindowDays - 1)).Format(analytics.DateLayout)
	}
	w, err := analytics.NewWindow(dateFrom, dateTo)
	if err != nil {
		return analytics.Window{}, err
	}
	if w.Days() > maxWindowDays {
		return analytics.Window{}, fmt.Errorf("%w: el rango máximo es de %d días", domain.ErrInvalidInput, maxWindowDays)
	}
	return w, nil
}

// loadExpenses lee los gastos que se cruzan con la ventana y descarta los que violan sus invariantes.
func (uc *ReportUseCase) loadExpenses(ctx context.Context, log *logger.Logger, storeID string, w analytics.Window) ([]*entity.OperationalExpense, error) {
	rows, err := uc.repos.Expenses.ListOverlapping(ctx, storeID, w.From, w.To)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetReport: gastos: %w", err)
	}
	out := make([]*entity.OperationalExpense, 0, len(rows))
	for _, e := range rows {
		if err := e.Validate(); err != nil {
			log.Warn().Err(err).Str("expense_id", e.ID).Msg("gasto operativo descartado")
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
