package controller

import (
	"io"

	"triage-assist-be/internal/dto"
	"triage-assist-be/internal/pkg/serverutils"
	"triage-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
	UploadReport(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService  service.ISessionService
	analysisService service.IAnalysisService
	reportService   service.IReportService
}

func NewSessionController(
	sessionService service.ISessionService,
	analysisService service.IAnalysisService,
	reportService service.IReportService,
) ISessionController {
	return &sessionController{
		sessionService:  sessionService,
		analysisService: analysisService,
		reportService:   reportService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.History)
	h.Get(":id", c.Show)
	h.Get(":id/status", c.Status)
	h.Post(":id/analyze", c.Analyze)
	h.Post(":id/report", c.UploadReport)
}

func sessionID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, service.ErrSessionNotFound
	}
	return id, nil
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Create(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) History(ctx *fiber.Ctx) error {
	res, err := c.sessionService.History(ctx.Context(), serverutils.UserID(ctx), ctx.QueryInt("limit", 0))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session history", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.Show(ctx.Context(), serverutils.UserID(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) Status(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.Status(ctx.Context(), serverutils.UserID(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session status", res))
}

func (c *sessionController) Analyze(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.analysisService.AnalyzeSession(ctx.UserContext(), serverutils.UserID(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze session", res))
}

func (c *sessionController) UploadReport(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing file field")
	}
	if header.Size > service.MaxReportSize {
		return service.ErrFileTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxReportSize+1))
	if err != nil {
		return err
	}

	req := dto.UploadReportRequest{
		FileName:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reportService.Upload(ctx.Context(), serverutils.UserID(ctx), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Report uploaded", res))
}
