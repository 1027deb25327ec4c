package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"fundtrack/src/schemas"
	"fundtrack/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) AddHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	var req schemas.AddHoldingRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	resp, err := h.Portfolio.AddHolding(ctx, userID, req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, resp, http.StatusCreated)
}

func (h *Handler) ListHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	resp, err := h.Portfolio.ListHoldings(ctx, userID)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, resp, http.StatusOK)
}

func (h *Handler) RemoveHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	schemeCode, err := strconv.Atoi(chi.URLParam(r, "schemeCode"))
	if err != nil {
		h.HandleErrors(w, r, utils.BadRequest("schemeCode required"))
		return
	}

	if err := h.Portfolio.RemoveHolding(ctx, userID, schemeCode); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, map[string]string{"message": "Fund removed from portfolio successfully"}, http.StatusOK)
}

func (h *Handler) PortfolioValue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	resp, err := h.Portfolio.Value(ctx, userID)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, resp, http.StatusOK)
}

func (h *Handler) PortfolioHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	points, err := h.Portfolio.History(ctx, userID)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, points, http.StatusOK)
}
