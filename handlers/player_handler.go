package handlers

import (
	"errors"
	"net/http"

	"github.com/emontecinos/futbol-tracker/models"
	"github.com/emontecinos/futbol-tracker/services"
	"github.com/go-chi/chi/v5"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(playerService services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input models.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	// ?club=<id> filtra por club; sin parámetro devuelve toda la liga.
	if clubID := r.URL.Query().Get("club"); clubID != "" {
		players, err := h.playerService.ListByClub(r.Context(), clubID)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	players, err := h.playerService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) GetByRut(w http.ResponseWriter, r *http.Request) {
	rut := chi.URLParam(r, "rut")
	if rut == "" {
		badRequestResponse(w, r, errors.New("rut is required"))
		return
	}

	player, err := h.playerService.GetByRut(r.Context(), rut)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
