package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fundtrack/src/api/controllers"
	"fundtrack/src/utils"

	"github.com/go-chi/jwtauth"
)

type Handler struct {
	Auth      controllers.AuthControllerI
	Portfolio controllers.PortfolioControllerI
	Funds     controllers.FundsControllerI
	Admin     controllers.AdminControllerI
}

func NewHandler(
	auth controllers.AuthControllerI,
	portfolio controllers.PortfolioControllerI,
	funds controllers.FundsControllerI,
	admin controllers.AdminControllerI,
) *Handler {
	return &Handler{
		Auth:      auth,
		Portfolio: portfolio,
		Funds:     funds,
		Admin:     admin,
	}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors maps controller errors onto HTTP responses; anything that
// is not an *utils.HTTPError is logged and hidden behind a 500.
func (h *Handler) HandleErrors(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *utils.HTTPError
	if !errors.As(err, &httpErr) {
		utils.LoggerFromContext(r.Context()).WithError(err).Error("request failed")
	}
	utils.WriteError(w, err)
}

func (h *Handler) decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return utils.BadRequest("Invalid request body")
	}
	return nil
}

// userID pulls the authenticated user from the verified JWT claims. The
// auth middleware guarantees a token is present on protected routes.
func (h *Handler) userID(r *http.Request) (int, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, utils.Unauthorized("Not authenticated")
	}
	return claimInt(claims, "user_id")
}

func claimInt(claims map[string]interface{}, key string) (int, error) {
	switch v := claims[key].(type) {
	case float64:
		return int(v), nil
	case int64:
		return int(v), nil
	case int:
		return v, nil
	case string:
		id, err := strconv.Atoi(v)
		if err == nil {
			return id, nil
		}
	}
	return 0, utils.Unauthorized("Not authenticated")
}
