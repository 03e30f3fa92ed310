package controllers

import (
	"net/http"

	"github.com/siddhant14g/Real-shop/app/services"
	"github.com/siddhant14g/Real-shop/pkg/bind"
	"github.com/siddhant14g/Real-shop/pkg/response"
)

type AuthController struct {
	svc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

// Register handles POST /auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.FromError(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	res, err := c.svc.Register(r.Context(), in)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.CreatedMessage(w, "User registered successfully", map[string]any{
		"token": res.Token,
		"user":  res.User.Public(),
	})
}

// Login handles POST /auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.FromError(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	res, err := c.svc.Login(r.Context(), in)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.SuccessMessage(w, "Login successful", map[string]any{
		"token": res.Token,
		"user":  res.User.Public(),
	})
}
