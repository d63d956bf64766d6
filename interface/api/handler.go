package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"voteapp/domain"
	"voteapp/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the read-only views of the ledger.
type Handler struct {
	treasuryInteractor *usecase.TreasuryInteractor
	voterInteractor    *usecase.VoterInteractor
	proposalInteractor *usecase.ProposalInteractor
}

type proposalView struct {
	*domain.Proposal
	State string `json:"state"`
}

func NewHandler(treasuryInteractor *usecase.TreasuryInteractor,
	voterInteractor *usecase.VoterInteractor,
	proposalInteractor *usecase.ProposalInteractor) *Handler {
	return &Handler{
		treasuryInteractor: treasuryInteractor,
		voterInteractor:    voterInteractor,
		proposalInteractor: proposalInteractor,
	}
}

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/treasury", h.handleGetTreasury)
	r.Get("/voters/{address}", h.handleGetVoter)
	r.Get("/proposals", h.handleListProposals)
	r.Get("/proposals/winner", h.handleGetWinner)
	r.Get("/proposals/{id}", h.handleGetProposal)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (h *Handler) handleGetTreasury(w http.ResponseWriter, r *http.Request) {
	info, err := h.treasuryInteractor.GetTreasury(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) handleGetVoter(w http.ResponseWriter, r *http.Request) {
	identity, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		writeError(w, err)
		return
	}
	voter, err := h.voterInteractor.GetVoter(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, voter)
}

func (h *Handler) handleListProposals(w http.ResponseWriter, r *http.Request) {
	proposals, err := h.proposalInteractor.ListProposals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	now := h.proposalInteractor.Now()
	views := make([]proposalView, 0, len(proposals))
	for _, proposal := range proposals {
		views = append(views, proposalView{Proposal: proposal, State: proposal.State(now)})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid proposal id"})
		return
	}
	proposal, err := h.proposalInteractor.GetProposal(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposalView{Proposal: proposal, State: proposal.State(h.proposalInteractor.Now())})
}

func (h *Handler) handleGetWinner(w http.ResponseWriter, r *http.Request) {
	winner, err := h.proposalInteractor.PickWinner(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposalView{Proposal: winner, State: winner.State(h.proposalInteractor.Now())})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrorTreasuryNotInitialized),
		errors.Is(err, domain.ErrorVoterNotRegistered),
		errors.Is(err, domain.ErrorProposalNotFound),
		errors.Is(err, domain.ErrorAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrorInvalidAddress):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("🔴 serving request - %v\n", err.Error())
		message = http.StatusText(status)
	}
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
