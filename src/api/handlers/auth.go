package handlers

import (
	"context"
	"net/http"
	"time"

	"fundtrack/src/schemas"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.SignupRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	resp, err := h.Auth.Signup(ctx, req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, resp, http.StatusCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.LoginRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	resp, err := h.Auth.Login(ctx, req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, resp, http.StatusOK)
}
