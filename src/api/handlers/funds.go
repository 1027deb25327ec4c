package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"fundtrack/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListFunds(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	search := r.URL.Query().Get("search")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	resp, err := h.Funds.ListFunds(ctx, search, page, limit)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, resp, http.StatusOK)
}

func (h *Handler) FundNavHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	schemeCode, err := strconv.Atoi(chi.URLParam(r, "schemeCode"))
	if err != nil {
		h.HandleErrors(w, r, utils.BadRequest("schemeCode required"))
		return
	}

	resp, err := h.Funds.GetNavHistory(ctx, schemeCode)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, resp, http.StatusOK)
}
