package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"fundtrack/src/api/controllers"
	"fundtrack/src/models"
	"fundtrack/src/repositories"
	"fundtrack/src/schemas"
	"fundtrack/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthController(userRepo *fakeUserRepo) *controllers.AuthController {
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	return controllers.NewAuthController(userRepo, tokenAuth, time.Hour)
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, code, httpErr.Code)
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	valid := schemas.SignupRequest{
		Name:     "Priya",
		Email:    "priya@example.com",
		Password: "Str0ng!pass",
	}

	t.Run("creates the user and returns a token", func(t *testing.T) {
		repo := &fakeUserRepo{}
		resp, err := newAuthController(repo).Signup(ctx, valid)

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		require.NotNil(t, resp.User)
		assert.Equal(t, "priya@example.com", resp.User.Email)
		assert.Equal(t, string(models.RoleUser), resp.User.Role)

		stored, err := repo.GetByEmail(ctx, valid.Email)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotEqual(t, valid.Password, stored.PasswordHash)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := newAuthController(&fakeUserRepo{}).Signup(ctx, schemas.SignupRequest{Email: "a@b.co"})
		assertHTTPError(t, err, http.StatusBadRequest)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		_, err := newAuthController(&fakeUserRepo{}).Signup(ctx, req)
		assertHTTPError(t, err, http.StatusBadRequest)
	})

	t.Run("rejects a weak password", func(t *testing.T) {
		for _, password := range []string{"short1!A", "alllowercase1!", "ALLUPPERCASE1!", "NoDigits!!", "NoSpecial11a"} {
			req := valid
			req.Password = password
			_, err := newAuthController(&fakeUserRepo{}).Signup(ctx, req)
			if password == "short1!A" {
				// Exactly 8 characters with all classes is acceptable.
				assert.NoError(t, err, password)
				continue
			}
			assertHTTPError(t, err, http.StatusBadRequest)
		}
	})

	t.Run("maps a duplicate email to a conflict", func(t *testing.T) {
		repo := &fakeUserRepo{createErr: repositories.ErrDuplicateEmail}
		_, err := newAuthController(repo).Signup(ctx, valid)
		assertHTTPError(t, err, http.StatusConflict)
	})

	t.Run("passes through unexpected repository errors", func(t *testing.T) {
		repo := &fakeUserRepo{createErr: errors.New("db down")}
		_, err := newAuthController(repo).Signup(ctx, valid)

		require.Error(t, err)
		var httpErr *utils.HTTPError
		assert.False(t, errors.As(err, &httpErr))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	seedUser := func(t *testing.T) *fakeUserRepo {
		t.Helper()
		repo := &fakeUserRepo{}
		_, err := newAuthController(repo).Signup(ctx, schemas.SignupRequest{
			Name:     "Priya",
			Email:    "priya@example.com",
			Password: "Str0ng!pass",
		})
		require.NoError(t, err)
		return repo
	}

	t.Run("returns a token for valid credentials", func(t *testing.T) {
		repo := seedUser(t)
		resp, err := newAuthController(repo).Login(ctx, schemas.LoginRequest{
			Email:    "priya@example.com",
			Password: "Str0ng!pass",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		repo := seedUser(t)
		_, err := newAuthController(repo).Login(ctx, schemas.LoginRequest{
			Email:    "priya@example.com",
			Password: "Wrong1!pass",
		})
		assertHTTPError(t, err, http.StatusUnauthorized)
	})

	t.Run("rejects an unknown email with the same message", func(t *testing.T) {
		_, err := newAuthController(&fakeUserRepo{}).Login(ctx, schemas.LoginRequest{
			Email:    "nobody@example.com",
			Password: "Str0ng!pass",
		})

		assertHTTPError(t, err, http.StatusUnauthorized)
		var httpErr *utils.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, "Invalid credentials", httpErr.Message)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := newAuthController(&fakeUserRepo{}).Login(ctx, schemas.LoginRequest{Email: "a@b.co"})
		assertHTTPError(t, err, http.StatusBadRequest)
	})
}
