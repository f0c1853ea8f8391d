package controllers

import (
	"errors"
	"net/http"

	"github.com/veyralabs/veyra/app/services"
	"github.com/veyralabs/veyra/pkg/ctx"
	"github.com/veyralabs/veyra/pkg/middleware"
)

// AuthController signs admins in and out of the back office.
type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

func NewAuthControllerWith(s *services.AuthService) *AuthController {
	return &AuthController{service: s}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges credentials for a token pair.
func (ct *AuthController) Login(c *ctx.Context) {
	var req loginRequest
	if !c.BindJSON(&req) {
		return
	}

	pair, err := ct.service.Login(req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.Unauthorized()
		return
	}
	if err != nil {
		c.Error(http.StatusInternalServerError, "Something went wrong")
		return
	}
	c.Success(pair)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh exchanges a valid refresh token for a new pair.
func (ct *AuthController) Refresh(c *ctx.Context) {
	var req refreshRequest
	if !c.BindJSON(&req) {
		return
	}

	pair, err := ct.service.Refresh(req.RefreshToken)
	if err != nil {
		c.Unauthorized()
		return
	}
	c.Success(pair)
}

// Me returns the claims of the authenticated admin.
func (ct *AuthController) Me(c *ctx.Context) {
	claims := middleware.ClaimsFromCtx(c.R.Context())
	if claims == nil {
		c.Unauthorized()
		return
	}
	c.Success(map[string]interface{}{
		"user_id": claims.UserID,
		"email":   claims.Email,
		"role":    claims.Role,
	})
}
