package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumes/api/http/presenter"
	"github.com/artem13815/resumes/pkg/apperr"
	"github.com/artem13815/resumes/pkg/auth"
)

// AuthMetrics receives sign-up and sign-in outcomes.
type AuthMetrics interface {
	IncrementUsersCreated()
	IncrementSignInFailures()
}

type noopAuthMetrics struct{}

func (noopAuthMetrics) IncrementUsersCreated()   {}
func (noopAuthMetrics) IncrementSignInFailures() {}

type AuthHandler struct {
	useCase   auth.AuthUseCase
	validator *Validator
	metrics   AuthMetrics
}

// NewAuthHandler builds the handler; metrics may be nil.
func NewAuthHandler(useCase auth.AuthUseCase, v *Validator, metrics AuthMetrics) *AuthHandler {
	if metrics == nil {
		metrics = noopAuthMetrics{}
	}
	return &AuthHandler{useCase: useCase, validator: v, metrics: metrics}
}

type signUpRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
	Name            string `json:"name" validate:"required"`
}

// SignUp registers a new applicant.
// @Summary Sign up
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body signUpRequest true "sign-up payload"
// @Success 201 {object} presenter.Response{data=auth.User}
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/sign-up [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req signUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid JSON payload")
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	user, err := h.useCase.SignUp(c.UserContext(), auth.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return err
	}
	h.metrics.IncrementUsersCreated()
	return presenter.JSON(c, http.StatusCreated, "sign-up completed", user)
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignIn exchanges credentials for an access token.
// @Summary Sign in
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body signInRequest true "sign-in payload"
// @Success 200 {object} presenter.Response{data=auth.Token}
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/sign-in [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req signInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid JSON payload")
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	token, err := h.useCase.SignIn(c.UserContext(), auth.SignInInput{Email: req.Email, Password: req.Password})
	if err != nil {
		if apperr.HasKind(err, apperr.KindUnauthorized) {
			h.metrics.IncrementSignInFailures()
		}
		return err
	}
	return presenter.JSON(c, http.StatusOK, "sign-in completed", token)
}
