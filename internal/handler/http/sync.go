package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/utils"
	"github.com/MKhiriev/go-pacs-sync/models"
	"github.com/go-chi/chi/v5"
)

const defaultRunsLimit = 20

type workflowsResponse struct {
	Workflows []string `json:"workflows"`
}

type runsResponse struct {
	Runs   []models.SyncRun `json:"runs"`
	Length int              `json:"length"`
}

func (h *Handler) listWorkflows(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, workflowsResponse{Workflows: h.services.Runner.Workflows()}, http.StatusOK)
}

func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	limit := defaultRunsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			log.Error().Str("func", "*Handler.listRuns").Str("limit", raw).Msg("invalid limit")
			utils.WriteError(w, ErrInvalidLimit.Error(), statusFromError(ErrInvalidLimit))
			return
		}
		limit = n
	}

	runs, err := h.services.Runner.RecentRuns(r.Context(), limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listRuns").Msg("error reading run ledger")
		utils.WriteError(w, "error reading run ledger", statusFromError(err))
		return
	}
	if runs == nil {
		runs = []models.SyncRun{}
	}

	utils.WriteJSON(w, runsResponse{Runs: runs, Length: len(runs)}, http.StatusOK)
}

// runWorkflow runs the named workflow synchronously and answers with its
// ledger entry. An aborted run still returns the entry, with the status
// derived from the error.
func (h *Handler) runWorkflow(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	name := chi.URLParam(r, "workflow")

	run, err := h.services.Runner.RunWorkflow(r.Context(), name)
	if err != nil {
		log.Err(err).Str("func", "*Handler.runWorkflow").Str("workflow", name).Msg("workflow run failed")
		status := statusFromError(err)
		if run.RunID == "" {
			utils.WriteError(w, err.Error(), status)
			return
		}
		utils.WriteJSON(w, run, status)
		return
	}

	utils.WriteJSON(w, run, http.StatusOK)
}
