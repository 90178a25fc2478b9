package http

import (
	"context"
	"errors"
	"mime"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seller-analytics/internal/application/dto"
	"github.com/jhoicas/seller-analytics/internal/domain"
	"github.com/jhoicas/seller-analytics/pkg/logger"
)

// HeaderReportID id de correlación del reporte (el mismo que aparece en los logs).
const HeaderReportID = "X-Report-ID"

// reportService contrato que necesita el handler; lo implementa *analytics.ReportUseCase.
type reportService interface {
	GetReport(ctx context.Context, req dto.ReportRequest) (*dto.ReportDTO, error)
	ExportPDF(ctx context.Context, req dto.ReportRequest) ([]byte, error)
}

// AnalyticsHandler endpoints del reporte de rentabilidad por tienda.
type AnalyticsHandler struct {
	svc reportService
	log *logger.Logger
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(svc reportService, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, log: log}
}

// GetReport godoc
// @Summary      Reporte de ganancias y pérdidas de la tienda
// @Description  Totales, días por fecha de entrega y de creación, ranking de productos,
// @Description  desgloses de entrega, estado de pedidos y publicidad del período.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        storeId   query  string  false  "Tienda. Default: la del token."
// @Param        dateFrom  query  string  false  "Inicio (YYYY-MM-DD). Default: dateTo - 29 días."
// @Param        dateTo    query  string  false  "Fin inclusive (YYYY-MM-DD). Default: hoy."
// @Success      200  {object}  dto.ReportDTO
// @Header       200  {string}  X-Report-ID  "id de correlación del reporte en los logs"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/report [get]
func (h *AnalyticsHandler) GetReport(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return h.fail(c, err)
	}
	report, err := h.svc.GetReport(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(HeaderReportID, report.ReportID)
	return c.JSON(report)
}

// ExportPDF godoc
// @Summary      Reporte de ganancias y pérdidas en PDF
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Param        storeId   query  string  false  "Tienda. Default: la del token."
// @Param        dateFrom  query  string  false  "Inicio (YYYY-MM-DD)."
// @Param        dateTo    query  string  false  "Fin inclusive (YYYY-MM-DD)."
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/report.pdf [get]
func (h *AnalyticsHandler) ExportPDF(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return h.fail(c, err)
	}
	out, err := h.svc.ExportPDF(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, attachmentDisposition("report-"+req.StoreID+".pdf"))
	return c.Send(out)
}

// parseRequest lee la query y resuelve la tienda: la pedida o la del token.
// Solo admin puede consultar una tienda distinta a la suya.
func (h *AnalyticsHandler) parseRequest(c *fiber.Ctx) (dto.ReportRequest, error) {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return req, errors.Join(domain.ErrInvalidInput, err)
	}
	req.StoreID = strings.TrimSpace(req.StoreID)
	own := GetStoreID(c)
	switch {
	case req.StoreID == "":
		req.StoreID = own
	case req.StoreID != own && GetRole(c) != RoleAdmin:
		return req, domain.ErrForbidden
	}
	return req, nil
}

func (h *AnalyticsHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrStoreNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "STORE_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no puede consultar esta tienda"})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("analytics: error inesperado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL_ERROR", Message: "no se pudo generar el reporte", Error: err.Error(),
	})
}

// attachmentDisposition escapa el nombre según RFC 2045/2231; storeId llega tal cual de la query.
func attachmentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
