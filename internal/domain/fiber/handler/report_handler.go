package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/fadilmartias/stress-manometer/internal/dto"
	"github.com/fadilmartias/stress-manometer/internal/middleware"
	"github.com/fadilmartias/stress-manometer/internal/repository"
	"github.com/fadilmartias/stress-manometer/internal/response"
	"github.com/fadilmartias/stress-manometer/internal/scoring"
	"github.com/fadilmartias/stress-manometer/internal/service"
	"github.com/fadilmartias/stress-manometer/internal/usecase"
	"github.com/fadilmartias/stress-manometer/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	uc             *usecase.ReportUsecase
	maxUploadBytes int64
}

func NewReportHandler(uc *usecase.ReportUsecase, maxUploadMB int) *ReportHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &ReportHandler{uc: uc, maxUploadBytes: int64(maxUploadMB) << 20}
}

func (h *ReportHandler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.Index)
	app.Post("/datasets", h.Upload)
	app.Delete("/datasets/:id", h.Discard)
	app.Get("/datasets/:id/schools", h.Schools)
	app.Get("/datasets/:id/inspect", h.Inspect)
	app.Get("/datasets/:id/export", h.Export)
	app.Post("/datasets/:id/reports", middleware.RateLimiter(5, 1*time.Minute), h.Generate)
}

func (h *ReportHandler) Index(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(indexPage)
}

func (h *ReportHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "file is required",
			Details: util.NewFormError("missing field", map[string]string{"file": "required"}).Errors,
		}, err)
	}
	data, err := h.readUpload(file)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: err.Error(),
		}, err)
	}

	ds, err := h.uc.Upload(file.Filename, bytes.NewReader(data))
	if err != nil {
		return h.fail(c, "failed to load survey", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success load survey",
		Data:    dto.NewDatasetDTO(ds),
	})
}

func (h *ReportHandler) Schools(c *fiber.Ctx) error {
	ds, err := h.uc.Dataset(c.Params("id"))
	if err != nil {
		return h.fail(c, "dataset not found", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get schools",
		Data:    ds.Schools,
	})
}

func (h *ReportHandler) Discard(c *fiber.Ctx) error {
	if err := h.uc.Discard(c.Params("id")); err != nil {
		return h.fail(c, "dataset not found", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success discard dataset",
	})
}

func (h *ReportHandler) Inspect(c *fiber.Ctx) error {
	agg, rows, err := h.uc.Inspect(c.Params("id"), c.Query("school"))
	if err != nil {
		return h.fail(c, "failed to inspect school", err)
	}
	page := response.Paginate(c.QueryInt("page", 1), c.QueryInt("page_size", 50), len(rows))
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success inspect school",
		Data:       dto.InspectionDTO{Aggregate: agg, Rows: dto.NewScoredRows(rows, page.From, page.To)},
		Pagination: &page,
	})
}

func (h *ReportHandler) Export(c *fiber.Ctx) error {
	art, err := h.uc.Export(c.Params("id"), c.Query("school"))
	if err != nil {
		return h.fail(c, "failed to export dataset", err)
	}
	return sendArtifact(c, art)
}

func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	format, err := usecase.ParseFormat(c.FormValue("format"))
	if err != nil {
		return h.fail(c, "invalid format", err)
	}
	req := usecase.ReportRequest{
		School: c.FormValue("school"),
		Format: format,
	}
	if file, err := c.FormFile("logo"); err == nil {
		data, err := h.readUpload(file)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: err.Error(),
			}, err)
		}
		req.Logo = &usecase.Logo{Filename: file.Filename, Data: data}
	}

	art, err := h.uc.Generate(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return h.fail(c, "failed to generate report", err)
	}
	return sendArtifact(c, art)
}

func (h *ReportHandler) readUpload(file *multipart.FileHeader) ([]byte, error) {
	if file.Size > h.maxUploadBytes {
		return nil, fmt.Errorf("%s is too large (max %dMB)", file.Filename, h.maxUploadBytes>>20)
	}
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", file.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, h.maxUploadBytes))
}

// fail maps usecase errors onto HTTP status codes.
func (h *ReportHandler) fail(c *fiber.Ctx, message string, err error) error {
	code := fiber.StatusInternalServerError
	var renderErr *service.RenderError
	switch {
	case errors.Is(err, repository.ErrDatasetNotFound),
		errors.Is(err, scoring.ErrNoSchoolData):
		code = fiber.StatusNotFound
	case errors.Is(err, util.ErrTooFewColumns),
		errors.Is(err, util.ErrMissingSchoolColumn),
		errors.Is(err, util.ErrUnsupportedFormat),
		errors.Is(err, util.ErrEmptySheet),
		errors.Is(err, usecase.ErrInvalidFormat),
		errors.Is(err, usecase.ErrSchoolRequired):
		code = fiber.StatusBadRequest
	case errors.As(err, &renderErr):
		code = fiber.StatusBadGateway
	}
	if code == fiber.StatusBadRequest || code == fiber.StatusNotFound {
		message = err.Error()
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code,
		Message: message,
	}, err)
}

func sendArtifact(c *fiber.Ctx, art *usecase.Artifact) error {
	c.Attachment(art.Filename)
	c.Set(fiber.HeaderContentType, art.ContentType)
	return c.Send(art.Data)
}
