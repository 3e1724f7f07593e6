package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/savioruz/eupago/internal/delivery/http/response"
	"github.com/savioruz/eupago/internal/domains/paybylink/service"
	"github.com/savioruz/eupago/pkg/constant"
	"github.com/savioruz/eupago/pkg/eupago/dto"
	"github.com/savioruz/eupago/pkg/logger"
)

type Handler struct {
	service service.PayByLinkService
	logger  logger.Interface
}

func New(s service.PayByLinkService, l logger.Interface) *Handler {
	return &Handler{
		service: s,
		logger:  l,
	}
}

const (
	identifier = "http - paybylink - %s"

	routeCreate = "/" + constant.PathPayByLinkCreate
	routeShow   = "/" + constant.PathPayByLinkShow + "/:id"
)

func (h *Handler) RegisterRoutes(r fiber.Router) {
	r.Post(routeCreate, h.Create)
	r.Get(routeShow, h.Show)
}

// Create godoc
// @Summary Create pay by link
// @Tags paybylink
// @Accept json
// @Produce json
// @Param request body dto.PayByLinkBody true "Pay by link request"
// @Success 200 {object} dto.PayByLinkResponse
// @Failure 400 {object} dto.PayByLinkErrorResponse
// @Failure 401 {object} dto.PayByLinkErrorResponse
// @Failure 409 {object} dto.PayByLinkErrorResponse
// @Router /v1.02/paybylink/create [post]
func (h *Handler) Create(ctx *fiber.Ctx) error {
	var req dto.PayByLinkBody

	if err := ctx.BodyParser(&req); err != nil {
		h.logger.Warn(identifier, "Create - body parser error: "+err.Error())

		return response.WithError(ctx, &service.Rejection{
			Status: fiber.StatusBadRequest,
			Code:   service.CodeInvalidRequest,
			Text:   "malformed request body",
		})
	}

	res, err := h.service.Create(ctx.Context(), req)
	if err != nil {
		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusOK, res)
}

// Show godoc
// @Summary Show pay by link
// @Tags paybylink
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Data[service.Link]
// @Failure 404 {object} dto.PayByLinkErrorResponse
// @Router /paybylink/{id} [get]
func (h *Handler) Show(ctx *fiber.Ctx) error {
	link, err := h.service.Get(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return response.WithError(ctx, err)
	}

	return response.WithData(ctx, fiber.StatusOK, link)
}
