package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/pos"
	"github.com/tu-usuario/almacen-pro/pkg/validator"
)

// POSHandler maneja el cobro del punto de venta.
type POSHandler struct {
	uc *pos.CheckoutUseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(uc *pos.CheckoutUseCase) *POSHandler {
	return &POSHandler{uc: uc}
}

// Checkout registra una venta descontando stock de la bodega.
func (h *POSHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return validationFailed(c, errs[0].Field)
	}
	resp, err := h.uc.Checkout(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
