package controllers

import (
	"context"
	"errors"
	"regexp"
	"time"
	"unicode"

	"fundtrack/src/models"
	"fundtrack/src/repositories"
	"fundtrack/src/schemas"
	"fundtrack/src/utils"

	"github.com/go-chi/jwtauth"
	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthControllerI interface {
	Signup(ctx context.Context, req schemas.SignupRequest) (*schemas.AuthResponse, error)
	Login(ctx context.Context, req schemas.LoginRequest) (*schemas.AuthResponse, error)
}

type AuthController struct {
	userRepo    repositories.UserRepository
	tokenAuth   *jwtauth.JWTAuth
	tokenExpiry time.Duration
}

func NewAuthController(userRepo repositories.UserRepository, tokenAuth *jwtauth.JWTAuth, tokenExpiry time.Duration) *AuthController {
	return &AuthController{
		userRepo:    userRepo,
		tokenAuth:   tokenAuth,
		tokenExpiry: tokenExpiry,
	}
}

func (c *AuthController) Signup(ctx context.Context, req schemas.SignupRequest) (*schemas.AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, utils.BadRequest("Missing fields")
	}
	if !emailRegex.MatchString(req.Email) {
		return nil, utils.BadRequest("Invalid email format")
	}
	if !isStrongPassword(req.Password) {
		return nil, utils.BadRequest("Password must be at least 8 characters, include uppercase, lowercase, number, and special character")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := c.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, utils.Conflict("Email already registered")
		}
		return nil, err
	}

	return c.authResponse(user)
}

func (c *AuthController) Login(ctx context.Context, req schemas.LoginRequest) (*schemas.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, utils.BadRequest("Missing fields")
	}

	user, err := c.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.Unauthorized("Invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, utils.Unauthorized("Invalid credentials")
	}

	return c.authResponse(user)
}

func (c *AuthController) authResponse(user *models.User) (*schemas.AuthResponse, error) {
	claims := map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, c.tokenExpiry)

	_, tokenString, err := c.tokenAuth.Encode(claims)
	if err != nil {
		return nil, err
	}

	return &schemas.AuthResponse{
		Token: tokenString,
		User: &schemas.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
	}, nil
}

// isStrongPassword enforces at least 8 characters with one uppercase, one
// lowercase, one digit and one special character.
func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsSpace(r):
			special = true
		}
	}
	return upper && lower && digit && special
}
