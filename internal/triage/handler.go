package triage

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/analyzer"
	"triage-backend/internal/conditions"
	"triage-backend/internal/extract"
	"triage-backend/internal/recommend"
	"triage-backend/internal/shared/server/middleware"
	"triage-backend/internal/shared/server/respond"
	"triage-backend/internal/shared/util"
)

const (
	defaultMaxUploadBytes = 5 << 20
	multipartSlack        = 64 << 10
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches triage routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.POST("/analyze/upload", h.upload)
	rg.POST("/final_analysis", h.finalAnalysis)
	rg.POST("/recommendations", h.recommendations)
	rg.GET("/conditions", h.listConditions)
	rg.GET("/conditions/:name", h.getCondition)
}

type analyzeRequest struct {
	Symptoms string `json:"symptoms"`
}

type finalAnalysisRequest struct {
	InitialSymptoms  []string `json:"initial_symptoms"`
	FollowUpSymptoms []string `json:"follow_up_symptoms"`
}

type analysisResponse struct {
	Status          string            `json:"status"`
	AnalysisID      string            `json:"analysisId"`
	Analysis        analyzer.Analysis `json:"analysis"`
	Recommendations recommend.Bundle  `json:"recommendations"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.InitialAnalysis(c.Request.Context(), req.Symptoms)
	if err != nil {
		writeError(c, err)
		return
	}
	writeResult(c, result)
}

func (h *Handler) finalAnalysis(c *gin.Context) {
	var req finalAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.FinalAnalysis(c.Request.Context(), req.InitialSymptoms, req.FollowUpSymptoms)
	if err != nil {
		writeError(c, err)
		return
	}
	writeResult(c, result)
}

func (h *Handler) recommendations(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	set, risk, err := analyzer.Normalize(raw)
	if err != nil {
		writeError(c, err)
		return
	}
	bundle, err := h.Svc.Recommend(c.Request.Context(), set, risk)
	if err != nil {
		writeError(c, err)
		return
	}
	if !bundle.Generic() {
		c.Set(middleware.RiskLevelKey, string(bundle.RiskLevel))
	}
	respond.OK(c, gin.H{
		"status":          "success",
		"recommendations": bundle,
	})
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartSlack)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "file is too large", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size > h.MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "file is too large", gin.H{"maxBytes": h.MaxUploadBytes})
		return
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.MaxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	if int64(len(data)) > h.MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "file is too large", gin.H{"maxBytes": h.MaxUploadBytes})
		return
	}

	result, err := h.Svc.AnalyzeDocument(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileName)
	if err != nil {
		writeError(c, err)
		return
	}
	writeResult(c, result)
}

func (h *Handler) listConditions(c *gin.Context) {
	items, err := h.Svc.Conditions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"conditions": items})
}

func (h *Handler) getCondition(c *gin.Context) {
	item, err := h.Svc.Condition(c.Request.Context(), strings.TrimSpace(c.Param("name")))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, item)
}

func writeResult(c *gin.Context, result Result) {
	c.Set(middleware.AnalysisIDKey, result.ID)
	c.Set(middleware.RiskLevelKey, string(result.Analysis.RiskLevel))
	respond.OK(c, analysisResponse{
		Status:          "success",
		AnalysisID:      result.ID,
		Analysis:        result.Analysis,
		Recommendations: result.Recommendations,
	})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptySymptoms):
		respond.Error(c, http.StatusBadRequest, "validation_error", "symptoms are required", nil)
	case errors.Is(err, ErrNoDocumentText), errors.Is(err, extract.ErrEmptyDocument):
		respond.Error(c, http.StatusBadRequest, "validation_error", "document contains no readable text", nil)
	case errors.Is(err, analyzer.ErrMalformedInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, recommend.ErrInvalidRiskLevel):
		respond.Error(c, http.StatusUnprocessableEntity, "invalid_risk_level", err.Error(), gin.H{"allowed": recommend.RiskLevels})
	case errors.Is(err, extract.ErrUnsupportedMedia):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", err.Error(), nil)
	case errors.Is(err, conditions.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "condition not found", nil)
	case errors.Is(err, conditions.ErrInvalidName):
		respond.Error(c, http.StatusBadRequest, "validation_error", "condition name is required", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process request", nil)
	}
}
