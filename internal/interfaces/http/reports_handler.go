package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-admin/internal/application/reports"
)

// ReportsHandler expone el motor de agregación financiera (protegido).
type ReportsHandler struct {
	uc *reports.ReportsUseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(uc *reports.ReportsUseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

// Profit godoc
// @Summary      Rentabilidad por ítem y por día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "today | yesterday | this_week | last_week | this_month | last_month"  default(this_month)
// @Success      200  {object}  dto.ProfitAnalysisDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/profit [get]
func (h *ReportsHandler) Profit(c *fiber.Ctx) error {
	out, err := h.uc.GetProfitAnalysis(c.Context(), c.Query("period", reports.PeriodThisMonth))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// CategoryProfit godoc
// @Summary      Rentabilidad por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "Palabra clave del período"  default(this_month)
// @Success      200  {object}  dto.CategoryProfitAnalysisDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/profit/categories [get]
func (h *ReportsHandler) CategoryProfit(c *fiber.Ctx) error {
	out, err := h.uc.GetCategoryProfitAnalysis(c.Context(), c.Query("period", reports.PeriodThisMonth))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Comprehensive godoc
// @Summary      Análisis comprensivo: ingreso, costos directos, gastos, utilidad
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "Palabra clave del período"  default(this_month)
// @Success      200  {object}  dto.ComprehensiveAnalysisDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/comprehensive [get]
func (h *ReportsHandler) Comprehensive(c *fiber.Ctx) error {
	out, err := h.uc.GetComprehensiveAnalysis(c.Context(), c.Query("period", reports.PeriodThisMonth))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// BalanceSheet godoc
// @Summary      Balance general a una fecha de corte
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        as_of  query  string  false  "Fecha de corte YYYY-MM-DD (vacío = hoy)"
// @Success      200  {object}  dto.BalanceSheetDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/balance-sheet [get]
func (h *ReportsHandler) BalanceSheet(c *fiber.Ctx) error {
	out, err := h.uc.GetBalanceSheet(c.Context(), c.Query("as_of"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// DailySummary godoc
// @Summary      Resumen de ventas de un día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día YYYY-MM-DD (vacío = hoy)"
// @Success      200  {object}  dto.DailySummaryDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/daily-summary [get]
func (h *ReportsHandler) DailySummary(c *fiber.Ctx) error {
	out, err := h.uc.GetDailySummary(c.Context(), c.Query("date"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
