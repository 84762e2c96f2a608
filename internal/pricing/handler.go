package pricing

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/jobcard-management/internal/auth"
	"github.com/frahmantamala/jobcard-management/internal/transport"
	"github.com/frahmantamala/jobcard-management/pkg/logger"
)

type ServiceAPI interface {
	UpsertPrice(dto *UpsertPriceDTO, userID int64) (*Price, error)
	LatestPrices(commodity string, limit int) ([]*Price, error)
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

// PricesResponse is the list shape returned to clients.
type PricesResponse struct {
	Prices []*Price `json:"prices"`
}

// GetPrices is a public read: the latest quotes, optionally filtered by
// the commodity query parameter.
func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	commodity := r.URL.Query().Get("commodity")

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	prices, err := h.Service.LatestPrices(commodity, limit)
	if err != nil {
		h.Logger.Error("GetPrices: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get prices")
		return
	}

	h.WriteJSON(w, http.StatusOK, PricesResponse{Prices: prices})
}

func (h *Handler) UpsertPrice(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("UpsertPrice: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpsertPriceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	price, err := h.Service.UpsertPrice(&dto, user.ID)
	if err != nil {
		h.Logger.Error("UpsertPrice: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, price)
}
