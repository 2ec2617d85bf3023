package ledger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/planforge/planforge/pkg/handlers"
	"github.com/planforge/planforge/pkg/identity"
	"github.com/planforge/planforge/pkg/pagination"
	"github.com/planforge/planforge/pkg/routes"
)

// Handler provides HTTP endpoints for ledger queries. All endpoints are
// scoped to the authenticated user; there is no cross-user listing.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// BalanceResponse is the JSON shape of the balance endpoint.
type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int    `json:"balance"`
}

// GrantRequest is the JSON body of the grant endpoint.
type GrantRequest struct {
	Credits int `json:"credits"`
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "ledger"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for ledger query endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/ledger",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/balance", Handler: h.Balance},
			{Method: "GET", Pattern: "/entries", Handler: h.Entries},
			{Method: "GET", Pattern: "/unsettled", Handler: h.Unsettled},
			{Method: "POST", Pattern: "/grants", Handler: h.Grant},
		},
	}
}

// Balance returns the authenticated user's credit balance.
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, identity.ErrUnauthenticated)
		return
	}

	balance, err := h.sys.Balance(r.Context(), userID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, BalanceResponse{
		UserID:  userID,
		Balance: balance,
	})
}

// Entries returns a page of the authenticated user's ledger entries.
func (h *Handler) Entries(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, identity.ErrUnauthenticated)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())
	filters.UserID = &userID

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Unsettled returns the authenticated user's entries that were charged
// but never marked settled.
func (h *Handler) Unsettled(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, identity.ErrUnauthenticated)
		return
	}

	items, err := h.sys.ListUnsettled(r.Context(), userID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Grant credits the authenticated user's balance. Grants settle on
// insert; there is no export artifact to wait for.
func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, identity.ErrUnauthenticated)
		return
	}

	var req GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("decode grant request: %w", err))
		return
	}
	if req.Credits <= 0 {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrInvalidGrant), ErrInvalidGrant)
		return
	}

	entry, err := h.sys.Append(r.Context(), AppendCommand{
		UserID:       userID,
		Event:        EventCreditGrant,
		DeltaCredits: req.Credits,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	entry, err = h.sys.Settle(r.Context(), entry.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.logger.Info("credits granted", "user_id", userID, "credits", req.Credits)
	handlers.RespondJSON(w, http.StatusCreated, entry)
}
