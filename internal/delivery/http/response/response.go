package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/savioruz/eupago/internal/domains/paybylink/service"
	"github.com/savioruz/eupago/pkg/constant"
	"github.com/savioruz/eupago/pkg/eupago/dto"
)

type Data[T any] struct {
	Data T `json:"data,omitempty"`
}

// WithJSON writes payload as is, the way the EuPago API answers.
func WithJSON(ctx *fiber.Ctx, code int, payload interface{}) error {
	return response(ctx, code, payload)
}

// WithData wraps payload in a data envelope.
func WithData[T any](ctx *fiber.Ctx, code int, payload T) error {
	return response(ctx, code, Data[T]{Data: payload})
}

// WithError writes err as an EuPago error body. Errors other than a
// service.Rejection become a 500 with code INTERNAL_ERROR.
func WithError(ctx *fiber.Ctx, err error) error {
	var rejection *service.Rejection
	if !errors.As(err, &rejection) {
		rejection = &service.Rejection{
			Status: fiber.StatusInternalServerError,
			Code:   "INTERNAL_ERROR",
			Text:   err.Error(),
		}
	}

	return response(ctx, rejection.Status, dto.PayByLinkErrorResponse{
		TransactionStatus: constant.TransactionStatusRejected,
		Code:              rejection.Code,
		Text:              rejection.Text,
	})
}

func response(ctx *fiber.Ctx, code int, payload interface{}) error {
	if payload == nil {
		return ctx.SendStatus(code)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)

	if err := ctx.Status(code).JSON(payload); err != nil {
		return err
	}

	return nil
}
