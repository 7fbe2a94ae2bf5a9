package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/emontecinos/futbol-tracker/models"
	"github.com/emontecinos/futbol-tracker/services"
	"github.com/go-chi/chi/v5"
)

type SuspensionHandler struct {
	suspensionService services.SuspensionService
}

func NewSuspensionHandler(suspensionService services.SuspensionService) *SuspensionHandler {
	return &SuspensionHandler{suspensionService: suspensionService}
}

func (h *SuspensionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.SuspensionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	suspension, err := h.suspensionService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"suspension": suspension}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SuspensionHandler) Update(w http.ResponseWriter, r *http.Request) {
	suspensionID := chi.URLParam(r, "suspensionID")
	if suspensionID == "" {
		badRequestResponse(w, r, errors.New("suspension id is required"))
		return
	}

	var input models.SuspensionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	suspension, err := h.suspensionService.Update(r.Context(), suspensionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"suspension": suspension}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SuspensionHandler) List(w http.ResponseWriter, r *http.Request) {
	// ?active=true devuelve solo los castigos vigentes hoy.
	if r.URL.Query().Get("active") == "true" {
		suspensions, err := h.suspensionService.ListActive(r.Context(), time.Now())
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"suspensions": suspensions}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	suspensions, err := h.suspensionService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"suspensions": suspensions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
