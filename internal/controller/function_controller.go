package controller

import (
	"errors"

	"triage-assist-be/internal/dto"
	"triage-assist-be/internal/pkg/logger"
	"triage-assist-be/internal/pkg/serverutils"
	"triage-assist-be/internal/service"
	"triage-assist-be/pkg/triage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
)

// functionCORS mirrors the headers hosted-function clients send.
var functionCORS = cors.Config{
	AllowOrigins: "*",
	AllowMethods: "POST,OPTIONS",
	AllowHeaders: "authorization, x-client-info, apikey, content-type",
}

type IFunctionController interface {
	RegisterRoutes(r fiber.Router)
	AnalyzeSymptoms(ctx *fiber.Ctx) error
	ProcessOcr(ctx *fiber.Ctx) error
}

type functionController struct {
	analysisService service.IAnalysisService
	ocrService      service.IOcrService
	logger          logger.ILogger
}

func NewFunctionController(
	analysisService service.IAnalysisService,
	ocrService service.IOcrService,
	log logger.ILogger,
) IFunctionController {
	return &functionController{
		analysisService: analysisService,
		ocrService:      ocrService,
		logger:          log,
	}
}

// RegisterRoutes mounts the function endpoints. CORS runs before auth so preflight
// requests are answered without a token.
func (c *functionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/functions/v1")
	h.Use(cors.New(functionCORS))
	h.Use(serverutils.JwtMiddleware)
	h.Post("analyze-symptoms", c.AnalyzeSymptoms)
	h.Post("process-ocr", c.ProcessOcr)
}

// unavailableResult is returned with status 200 whenever analysis cannot run.
func unavailableResult(err error) dto.AnalyzeSymptomsResponse {
	recs := triage.Recommendations{Disclaimer: "This is an educational tool only."}
	recs.EnsureDefaults()
	return dto.AnalyzeSymptomsResponse{
		Result: triage.Result{
			TriageLevel:     triage.LevelSeeDoctor,
			TriageReason:    "Please consult a healthcare professional",
			Recommendations: recs,
			ConfidenceScore: 0,
			Sources:         []string{},
			Disclaimer:      "This is an educational tool only.",
		},
		Error: err.Error(),
	}
}

func (c *functionController) AnalyzeSymptoms(ctx *fiber.Ctx) error {
	var req dto.AnalyzeSymptomsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.JSON(unavailableResult(fiber.NewError(fiber.StatusBadRequest, "invalid request body")))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.JSON(unavailableResult(err))
	}

	res, err := c.analysisService.Analyze(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		c.logger.Error("FUNCTIONS", "analyze-symptoms failed", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
		return ctx.JSON(unavailableResult(err))
	}

	return ctx.JSON(dto.AnalyzeSymptomsResponse{Result: res})
}

func (c *functionController) ProcessOcr(ctx *fiber.Ctx) error {
	var req dto.ProcessOcrRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.FunctionErrorResponse{Error: "invalid request body"})
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.FunctionErrorResponse{Error: err.Error()})
	}

	res, err := c.ocrService.ProcessOwned(ctx.UserContext(), serverutils.UserID(ctx), uuid.MustParse(req.FileId))
	if errors.Is(err, service.ErrReportNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(dto.FunctionErrorResponse{Error: err.Error()})
	}
	if err != nil {
		c.logger.Error("FUNCTIONS", "process-ocr failed", map[string]interface{}{
			"file_id": req.FileId,
			"error":   err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.FunctionErrorResponse{Error: err.Error()})
	}

	return ctx.JSON(dto.ProcessOcrResponse{Success: true, Data: *res})
}
