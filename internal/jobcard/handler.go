package jobcard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/jobcard-management/internal/auth"
	"github.com/frahmantamala/jobcard-management/internal/transport"
	"github.com/frahmantamala/jobcard-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateJobCard(dto *CreateJobCardDTO, userID int64) (*JobCard, error)
	GetJobCardByID(id int64) (*JobCard, error)
	GetJobCards(limit, offset int) ([]*JobCard, error)
	GetPendingApprovals(limit, offset int) ([]*JobCard, error)
	UpdateJobCard(id int64, dto *UpdateJobCardDTO) (*JobCard, error)
	SubmitForApproval(id int64) (*JobCard, error)
	ApproveJobCard(id int64, approverID int64) (*JobCard, error)
	RejectJobCard(id int64, approverID int64, reason string) (*JobCard, error)
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

func (h *Handler) CreateJobCard(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateJobCard: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateJobCardDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateJobCard: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	card, err := h.Service.CreateJobCard(&dto, user.ID)
	if err != nil {
		h.Logger.Error("CreateJobCard: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateJobCard: job card created",
		"jobcard_id", card.ID,
		"reference", card.Reference,
		"user_id", user.ID)

	h.WriteJSON(w, http.StatusCreated, card)
}

func (h *Handler) GetJobCard(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid job card ID")
		return
	}

	card, err := h.Service.GetJobCardByID(id)
	if err != nil {
		h.Logger.Error("GetJobCard: service error", "error", err, "jobcard_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, card)
}

func (h *Handler) GetJobCards(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	cards, err := h.Service.GetJobCards(limit, offset)
	if err != nil {
		h.Logger.Error("GetJobCards: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get job cards")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"job_cards": cards,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetPendingApprovals lists cards awaiting clearance, newest last.
func (h *Handler) GetPendingApprovals(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	cards, err := h.Service.GetPendingApprovals(limit, offset)
	if err != nil {
		h.Logger.Error("GetPendingApprovals: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get pending approvals")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"job_cards": cards,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *Handler) UpdateJobCard(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid job card ID")
		return
	}

	var dto UpdateJobCardDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	card, err := h.Service.UpdateJobCard(id, &dto)
	if err != nil {
		h.Logger.Error("UpdateJobCard: service error", "error", err, "jobcard_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, card)
}

func (h *Handler) SubmitJobCard(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid job card ID")
		return
	}

	card, err := h.Service.SubmitForApproval(id)
	if err != nil {
		h.Logger.Error("SubmitJobCard: service error", "error", err, "jobcard_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, card)
}

func (h *Handler) ApproveJobCard(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("ApproveJobCard: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid job card ID")
		return
	}

	card, err := h.Service.ApproveJobCard(id, user.ID)
	if err != nil {
		h.Logger.Error("ApproveJobCard: service error", "error", err, "jobcard_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ApproveJobCard: approved", "jobcard_id", id, "approver_id", user.ID)

	h.WriteJSON(w, http.StatusOK, card)
}

func (h *Handler) RejectJobCard(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("RejectJobCard: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid job card ID")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	card, err := h.Service.RejectJobCard(id, user.ID, body.Reason)
	if err != nil {
		h.Logger.Error("RejectJobCard: service error", "error", err, "jobcard_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, card)
}

func (h *Handler) idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func paginationParams(r *http.Request) (int, int) {
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

	return limit, offset
}
