package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-admin/internal/application/dto"
	"github.com/tu-usuario/resto-admin/internal/application/inventory"
	"github.com/tu-usuario/resto-admin/internal/domain/repository"
)

// InventoryHandler maneja ajustes, mermas y consulta del libro de movimientos.
type InventoryHandler struct {
	adjustments *inventory.AdjustmentUseCase
	logRepo     repository.InventoryLogRepository
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjustments *inventory.AdjustmentUseCase, logRepo repository.InventoryLogRepository) *InventoryHandler {
	return &InventoryHandler{adjustments: adjustments, logRepo: logRepo}
}

// RecordAdjustment godoc
// @Summary      Registrar corrección de conteo (delta con signo libre)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "Ajuste"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) RecordAdjustment(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newStock, err := h.adjustments.RecordAdjustment(c.Context(), in.ItemID, in.Delta, in.Reason, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.StockResponse{ItemID: in.ItemID, NewStock: newStock})
}

// RecordWaste godoc
// @Summary      Registrar merma (siempre descuenta stock)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WasteRequest  true  "Merma"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/waste [post]
func (h *InventoryHandler) RecordWaste(c *fiber.Ctx) error {
	var in dto.WasteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newStock, err := h.adjustments.RecordWaste(c.Context(), in.ItemID, in.Quantity, in.Reason, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.StockResponse{ItemID: in.ItemID, NewStock: newStock})
}

// ListMovements godoc
// @Summary      Consultar el libro de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "Filtrar por ítem"
// @Param        type     query  string  false  "STOCK_IN | STOCK_OUT | ADJUSTMENT | WASTE"
// @Param        from     query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to       query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200      {array}  dto.MovementDTO
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementQueryRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	in.DefaultPage()

	filter := repository.LogFilter{
		ItemID: in.ItemID,
		Type:   in.Type,
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if in.From != "" {
		from, err := time.Parse("2006-01-02", in.From)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inicial inválida"})
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := time.Parse("2006-01-02", in.To)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha final inválida"})
		}
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}

	entries, err := h.logRepo.Query(filter)
	if err != nil {
		return handleError(c, err)
	}
	out := make([]dto.MovementDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.MovementDTO{
			ID:            e.ID,
			ItemID:        e.ItemID,
			UserID:        e.UserID,
			Type:          e.Type,
			Quantity:      e.Quantity,
			PreviousStock: e.PreviousStock,
			NewStock:      e.NewStock,
			Reason:        e.Reason,
			Reference:     e.Reference,
			CreatedAt:     e.CreatedAt,
		})
	}
	return c.JSON(out)
}
