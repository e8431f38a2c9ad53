package response

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/render"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.WritePage(w, r, Page{
		Title:  "Error",
		Name:   "error",
		Status: status,
		Data:   render.ErrorPage{Status: status, Message: message},
	})
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch e := err.(type) {
	case *errs.UnauthenticatedError:
		log.Info("no session identity", "path", r.URL.Path)
		h.Redirect(w, r, "/login")

	case *errs.NotFoundError:
		log.Warn("resource not found", "error", e.Message)
		h.WriteError(w, r, http.StatusNotFound, "This page has expired or does not exist.")

	case *errs.ValidationError:
		log.Warn("validation failed", "error", e.Message, "field", e.Field)
		h.WriteError(w, r, http.StatusBadRequest, e.Message)

	case *errs.ConflictError:
		log.Warn("request conflicts with current state", "error", e.Message)
		h.WriteError(w, r, http.StatusConflict, "That action is already in progress.")

	case *errs.DatabaseError:
		log.Error("database error",
			"operation", e.Op,
			"error", e.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "An error occurred")

	case *errs.ExternalServiceError:
		level := slog.LevelError
		if e.Transient {
			level = slog.LevelWarn
		}
		log.Log(r.Context(), level, "external service error",
			"service", e.Service,
			"transient", e.Transient,
			"error", e.Message)

		status := http.StatusBadGateway
		if e.Transient {
			status = http.StatusServiceUnavailable
		}
		h.WriteError(w, r, status, errs.Display(e, "Service temporarily unavailable"))

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
