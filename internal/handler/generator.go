package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/vaultpass/passforge/internal/crypto"
	"github.com/vaultpass/passforge/internal/middleware"
	"github.com/vaultpass/passforge/internal/model"
	"github.com/vaultpass/passforge/internal/service"
)

const maxBodyBytes = 1 << 20 // 1MB

// GeneratorHandler handles HTTP requests for password generation and validation.
type GeneratorHandler struct {
	service *service.GeneratorService
	logger  *slog.Logger
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService, logger *slog.Logger) *GeneratorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeneratorHandler{service: svc, logger: logger}
}

// HandleGenerate handles POST /api/v1/generate requests.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Generate(req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGenerateBatch handles POST /api/v1/generate/batch requests.
func (h *GeneratorHandler) HandleGenerateBatch(w http.ResponseWriter, r *http.Request) {
	var req model.BatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.GenerateBatch(req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if client, ok := middleware.ClientFromContext(r.Context()); ok {
		h.logger.Info("batch generated", "client", client, "count", req.Count, "failed", resp.Failed)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleValidate handles POST /api/v1/validate requests.
func (h *GeneratorHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req model.ValidateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, h.service.Validate(req))
}

// HandleVerify handles POST /api/v1/verify requests.
func (h *GeneratorHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Verify(req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *GeneratorHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isValidationError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, crypto.ErrExhausted):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse(err.Error()))
	default:
		h.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}

func isValidationError(err error) bool {
	return crypto.IsConfigError(err) ||
		errors.Is(err, service.ErrCountRequired) ||
		errors.Is(err, service.ErrBatchTooLarge) ||
		errors.Is(err, service.ErrPasswordRequired) ||
		errors.Is(err, service.ErrHashRequired) ||
		errors.Is(err, crypto.ErrInvalidHashFormat) ||
		errors.Is(err, crypto.ErrIncompatibleVersion)
}

// decodeJSON reads the request body into v. An empty body leaves v at its zero
// value so that every field falls back to its default.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		return true
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
