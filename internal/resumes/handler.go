package resumes

import (
	"context"
	"embed"
	"encoding/base64"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	ginrender "github.com/gin-gonic/gin/render"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/resume/render"
)

const maxFormSize = 1 << 20 // 1MB

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Builder is the part of Service the handler depends on.
type Builder interface {
	Build(ctx context.Context, in FormInput) (Result, error)
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc Builder
}

// NewHandler constructs a Handler.
func NewHandler(svc Builder) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPages attaches the HTML form routes.
func (h *Handler) RegisterPages(r gin.IRoutes) {
	r.GET("/", h.form)
	r.POST("/resume", h.submit)
}

// RegisterRoutes attaches the JSON and binary API routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.create)
	rg.POST("/resumes/docx", h.createDocx)
}

type formPage struct {
	Input FormInput
	Error string
}

type resultPage struct {
	Preview  string
	Download template.URL
	FileName string
	Warnings []string
}

type resumeResponse struct {
	Experience string   `json:"experience"`
	Summary    string   `json:"summary,omitempty"`
	Preview    string   `json:"preview"`
	Warnings   []string `json:"warnings,omitempty"`
	Document   string   `json:"document"`
	MimeType   string   `json:"mimeType"`
	FileName   string   `json:"fileName"`
}

func (h *Handler) form(c *gin.Context) {
	html(c, http.StatusOK, "form.html", formPage{})
}

func (h *Handler) submit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFormSize)

	var in FormInput
	if err := c.ShouldBind(&in); err != nil {
		html(c, http.StatusBadRequest, "form.html", formPage{Input: in, Error: "Unable to read the submitted form."})
		return
	}

	res, err := h.Svc.Build(c.Request.Context(), in)
	if err != nil {
		status, _ := statusFor(err)
		c.Set(middleware.StageKey, string(StageOf(err)))
		html(c, status, "form.html", formPage{Input: in, Error: messageFor(err, in)})
		return
	}

	html(c, http.StatusOK, "result.html", resultPage{
		Preview:  res.Preview,
		Download: template.URL("data:" + render.MimeType + ";base64," + base64.StdEncoding.EncodeToString(res.Document)),
		FileName: render.FileName,
		Warnings: res.Warnings,
	})
}

func (h *Handler) create(c *gin.Context) {
	res, ok := h.buildJSON(c)
	if !ok {
		return
	}
	respond.JSON(c, http.StatusCreated, resumeResponse{
		Experience: res.Experience,
		Summary:    res.Summary,
		Preview:    res.Preview,
		Warnings:   res.Warnings,
		Document:   base64.StdEncoding.EncodeToString(res.Document),
		MimeType:   render.MimeType,
		FileName:   render.FileName,
	})
}

func (h *Handler) createDocx(c *gin.Context) {
	res, ok := h.buildJSON(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+render.FileName+`"`)
	c.Data(http.StatusOK, render.MimeType, res.Document)
}

func (h *Handler) buildJSON(c *gin.Context) (Result, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFormSize)

	var in FormInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return Result{}, false
	}

	res, err := h.Svc.Build(c.Request.Context(), in)
	if err != nil {
		stage := StageOf(err)
		c.Set(middleware.StageKey, string(stage))
		status, code := statusFor(err)
		var details any
		if errors.Is(err, ErrMissingFields) {
			details = gin.H{"missing": in.Missing()}
		}
		respond.Error(c, status, code, messageFor(err, in), details)
		return Result{}, false
	}
	return res, true
}

func statusFor(err error) (int, string) {
	switch StageOf(err) {
	case StageValidate:
		return http.StatusBadRequest, "validation_error"
	case StageGenerate:
		return http.StatusBadGateway, "generation_failed"
	case StageExtract:
		return http.StatusBadGateway, "extraction_failed"
	default:
		return http.StatusInternalServerError, "render_failed"
	}
}

func messageFor(err error, in FormInput) string {
	switch {
	case errors.Is(err, ErrMissingFields):
		return "Please fill in all the fields. Missing: " + strings.Join(in.Missing(), ", ")
	case errors.Is(err, ErrMarkerNotFound):
		return "Failed to parse the AI-generated content. Please try again."
	case errors.Is(err, ErrGeneration):
		return "An error occurred while generating your resume. Please try again."
	default:
		return "Failed to render the resume document."
	}
}

func html(c *gin.Context, status int, name string, data any) {
	c.Render(status, ginrender.HTML{Template: pages, Name: name, Data: data})
}
