package handlers

import (
	"context"
	"net/http"
	"time"
)

func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	users, err := h.Admin.ListUsers(ctx)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, users, http.StatusOK)
}

func (h *Handler) AdminListHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	holdings, err := h.Admin.ListHoldings(ctx)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, holdings, http.StatusOK)
}

func (h *Handler) AdminPopularFunds(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	funds, err := h.Admin.PopularFunds(ctx)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, funds, http.StatusOK)
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.Admin.Stats(ctx)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, stats, http.StatusOK)
}

// AdminTriggerNavSync runs a full sync inline, so the timeout budget is
// sized for many external fetches with retries.
func (h *Handler) AdminTriggerNavSync(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	resp, err := h.Admin.TriggerNavSync(ctx)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, resp, http.StatusOK)
}
