package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/transfer"
	"github.com/tu-usuario/almacen-pro/pkg/validator"
)

// TransferHandler maneja el ciclo de vida de solicitudes de traslado.
type TransferHandler struct {
	uc *transfer.UseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create crea una solicitud de traslado en estado pending.
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return validationFailed(c, errs[0].Field)
	}
	resp, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID obtiene una solicitud con su historial completo.
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
	}
	return c.JSON(resp)
}

// List lista solicitudes con filtros de bodega, dirección, estado, texto y fechas.
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var in dto.TransferListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query params inválidos"})
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return validationFailed(c, errs[0].Field)
	}
	resp, err := h.uc.List(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Approve aprueba una solicitud pendiente (admin o gerente de la bodega destino).
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	var in dto.TransferDecisionRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return badBody(c)
	}
	resp, err := h.uc.Approve(c.Context(), GetUserID(c), c.Params("id"), in.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Reject rechaza una solicitud pendiente; el comentario es obligatorio.
func (h *TransferHandler) Reject(c *fiber.Ctx) error {
	var in dto.TransferDecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Reject(c.Context(), GetUserID(c), c.Params("id"), in.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Dispatch marca una solicitud aprobada como en tránsito.
func (h *TransferHandler) Dispatch(c *fiber.Ctx) error {
	resp, err := h.uc.MarkInTransit(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Complete cierra la solicitud y ejecuta el movimiento físico de stock
// (restar en origen, sumar en destino) de forma atómica.
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	resp, err := h.uc.Complete(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
