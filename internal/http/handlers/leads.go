package handlers

import (
	"net/http"

	"github.com/hongminglow/leads-api/internal/auth"
	"github.com/hongminglow/leads-api/internal/http/respond"
	"github.com/hongminglow/leads-api/internal/logging"
	"github.com/hongminglow/leads-api/internal/models"
)

var defaultLeads = []models.Lead{
	{ID: "1", Name: "Zezinho"},
	{ID: "2", Name: "Joaquim"},
}

// LeadsHandler serves the lead listing. It expects to sit behind middleware.Authenticate.
type LeadsHandler struct {
	leads []models.Lead
	log   logging.Logger
}

// NewLeadsHandler returns a handler serving the fixed lead list.
func NewLeadsHandler(log logging.Logger) *LeadsHandler {
	return &LeadsHandler{leads: defaultLeads, log: log}
}

// ServeHTTP lists leads for the account Authenticate put in the request context,
// and answers 401 if there is none.
func (h *LeadsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Invalid access token")
		return
	}
	h.log.Info(r.Context(), "listing leads", "account_id", accountID)
	respond.JSON(w, http.StatusOK, "ok", map[string]any{"leads": h.leads})
}
