package exporter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/jobcard-management/internal/transport"
	"github.com/frahmantamala/jobcard-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateExporter(dto *CreateExporterDTO) (*Exporter, error)
	GetExporterByID(id int64) (*Exporter, error)
	GetExporters(limit, offset int) ([]*Exporter, error)
	UpdateExporter(id int64, dto *UpdateExporterDTO) (*Exporter, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateExporter(w http.ResponseWriter, r *http.Request) {
	var dto CreateExporterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.CreateExporter(&dto)
	if err != nil {
		h.Logger.Error("CreateExporter: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, exp)
}

func (h *Handler) GetExporter(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid exporter ID")
		return
	}

	exp, err := h.Service.GetExporterByID(id)
	if err != nil {
		h.Logger.Error("GetExporter: service error", "error", err, "exporter_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

func (h *Handler) GetExporters(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	exporters, err := h.Service.GetExporters(limit, offset)
	if err != nil {
		h.Logger.Error("GetExporters: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get exporters")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"exporters": exporters,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *Handler) UpdateExporter(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid exporter ID")
		return
	}

	var dto UpdateExporterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.UpdateExporter(id, &dto)
	if err != nil {
		h.Logger.Error("UpdateExporter: service error", "error", err, "exporter_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}
