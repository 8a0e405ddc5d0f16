package controller

import (
	"triage-assist-be/internal/dto"
	"triage-assist-be/internal/pkg/serverutils"
	"triage-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConsentController interface {
	RegisterRoutes(r fiber.Router)
	Record(ctx *fiber.Ctx) error
	Latest(ctx *fiber.Ctx) error
}

type consentController struct {
	service service.IConsentService
}

func NewConsentController(service service.IConsentService) IConsentController {
	return &consentController{service: service}
}

func (c *consentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/consent/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Record)
	h.Get("latest", c.Latest)
}

func (c *consentController) Record(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)

	var req dto.RecordConsentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Record(ctx.Context(), userId, &req, ctx.Get(fiber.HeaderUserAgent), ctx.IP())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Consent recorded", res))
}

func (c *consentController) Latest(ctx *fiber.Ctx) error {
	res, err := c.service.Latest(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get latest consent", res))
}
