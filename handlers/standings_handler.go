package handlers

import (
	"errors"
	"net/http"

	"github.com/emontecinos/futbol-tracker/models"
	"github.com/emontecinos/futbol-tracker/services"
	"github.com/go-chi/chi/v5"
)

// StandingsHandler expone la tabla de posiciones y las operaciones
// administrativas sobre ella (castigos, fecha 3, recálculo, cierre).
type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

func (h *StandingsHandler) ListRankings(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.standingsService.ListRankings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rankings": rankings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) GetSeason(w http.ResponseWriter, r *http.Request) {
	season, err := h.standingsService.SeasonState(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type seriesDisabledInput struct {
	Category models.Category `json:"category"`
	Disabled bool            `json:"disabled"`
}

func (h *StandingsHandler) SetSeriesDisabled(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "clubID")
	if clubID == "" {
		badRequestResponse(w, r, errors.New("club id is required"))
		return
	}

	var input seriesDisabledInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	club, err := h.standingsService.SetSeriesDisabled(r.Context(), clubID, input.Category, input.Disabled)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"club": club}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type date3Input struct {
	Passed bool `json:"passed"`
}

func (h *StandingsHandler) SetDate3Passed(w http.ResponseWriter, r *http.Request) {
	var input date3Input
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	season, err := h.standingsService.SetDate3Passed(r.Context(), input.Passed)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.standingsService.Recalculate(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rankings": rankings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) RolloverSeason(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.standingsService.RolloverSeason(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rankings": rankings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
