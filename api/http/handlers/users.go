package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumes/api/http/presenter"
	"github.com/artem13815/resumes/pkg/apperr"
	"github.com/artem13815/resumes/pkg/security/jwt"
)

type UsersHandler struct{}

func NewUsersHandler() *UsersHandler { return &UsersHandler{} }

// Me returns the authenticated user.
// @Summary Current user
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Response{data=auth.User}
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /users/me [get]
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("not authenticated")
	}
	return presenter.JSON(c, http.StatusOK, "current user", user)
}
