package auth

import (
	"errors"

	"github.com/grcledger/grcledger/pkg/controller"
	"github.com/grcledger/grcledger/pkg/observability/logger"
	"github.com/grcledger/grcledger/pkg/server/router"
)

// RegisterRequest is the POST /api/auth/register payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// LoginRequest is the POST /api/auth/login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// Handler serves the authentication endpoints.
type Handler struct {
	users  *UserStore
	issuer *TokenIssuer
	log    logger.Logger
}

// NewHandler creates the auth HTTP handler.
func NewHandler(users *UserStore, issuer *TokenIssuer, log logger.Logger) *Handler {
	return &Handler{users: users, issuer: issuer, log: log}
}

// Register mounts the auth routes on the given router group.
func (h *Handler) Register(api router.Router) {
	g := api.Group("/auth")
	g.POST("/register", h.RegisterUser)
	g.POST("/login", h.Login)
}

// RegisterUser handles POST /api/auth/register. A taken email is a conflict,
// not a validation failure.
func (h *Handler) RegisterUser(c router.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return controller.Error(c, controller.NewValidationError("invalid request body", nil))
	}
	if req.Email == "" || req.Password == "" {
		return controller.Error(c, controller.NewValidationError("email and password are required", nil))
	}

	user, err := h.users.Create(c.Request().Context(), req.Email, req.Password, req.FullName)
	if errors.Is(err, ErrUserExists) {
		return controller.Error(c, controller.NewConflictError("user already exists", nil))
	}
	if err != nil {
		return controller.Error(c, err)
	}

	return h.respondWithToken(c, user)
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c router.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return controller.Error(c, controller.NewValidationError("invalid request body", nil))
	}

	user, err := h.users.Authenticate(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return controller.Error(c, controller.NewUnauthorizedError("invalid credentials"))
	}
	if err != nil {
		return controller.Error(c, err)
	}

	return h.respondWithToken(c, user)
}

func (h *Handler) respondWithToken(c router.Context, user *User) error {
	token, err := h.issuer.Generate(user)
	if err != nil {
		return controller.Error(c, err)
	}
	return controller.OK(c, AuthResponse{
		Token:    token,
		UserID:   user.ID.Hex(),
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	})
}
