package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/resumes/api/http/presenter"
	"github.com/artem13815/resumes/pkg/apperr"
	"github.com/artem13815/resumes/pkg/resume"
	"github.com/artem13815/resumes/pkg/security/jwt"
)

type ResumesHandler struct {
	useCase   resume.UseCase
	validator *Validator
}

func NewResumesHandler(useCase resume.UseCase, v *Validator) *ResumesHandler {
	return &ResumesHandler{useCase: useCase, validator: v}
}

type createResumeRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required,min=150"`
}

type updateResumeRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content" validate:"omitempty,min=150"`
}

type deleteResumeResponse struct {
	ID uuid.UUID `json:"id"`
}

// Create stores a new resume for the current user.
// @Summary Create resume
// @Tags    resumes
// @Accept  json
// @Produce json
// @Param   input body createResumeRequest true "resume payload"
// @Security BearerAuth
// @Success 201 {object} presenter.Response{data=resume.Resume}
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /resumes [post]
func (h *ResumesHandler) Create(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req createResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid JSON payload")
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	r, err := h.useCase.Create(c.UserContext(), ownerID, resume.CreateInput{Title: req.Title, Content: req.Content})
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusCreated, "resume created", r)
}

// List returns the current user's resumes.
// @Summary List resumes
// @Tags    resumes
// @Produce json
// @Param   sort query string false "creation time order" Enums(asc, desc) default(desc)
// @Security BearerAuth
// @Success 200 {object} presenter.Response{data=[]resume.View}
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /resumes [get]
func (h *ResumesHandler) List(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.useCase.List(c.UserContext(), ownerID, resume.ParseSortOrder(c.Query("sort")))
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, "resumes listed", items)
}

// Get returns one resume of the current user.
// @Summary Get resume
// @Tags    resumes
// @Produce json
// @Param   id path string true "resume id (UUID)"
// @Security BearerAuth
// @Success 200 {object} presenter.Response{data=resume.View}
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [get]
func (h *ResumesHandler) Get(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := resumeID(c)
	if err != nil {
		return err
	}
	v, err := h.useCase.Get(c.UserContext(), ownerID, id)
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, "resume found", v)
}

// Update changes title and/or content. Empty fields keep stored values.
// @Summary Update resume
// @Tags    resumes
// @Accept  json
// @Produce json
// @Param   id path string true "resume id (UUID)"
// @Param   input body updateResumeRequest true "fields to change"
// @Security BearerAuth
// @Success 200 {object} presenter.Response{data=resume.Resume}
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [patch]
// @Router  /resumes/{id} [put]
func (h *ResumesHandler) Update(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := resumeID(c)
	if err != nil {
		return err
	}
	var req updateResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid JSON payload")
	}
	patch := resume.Patch{Title: req.Title, Content: req.Content}
	if patch.Normalize().Empty() {
		return apperr.BadRequest("title or content is required")
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	r, err := h.useCase.Update(c.UserContext(), ownerID, id, patch)
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, "resume updated", r)
}

// Delete removes a resume of the current user.
// @Summary Delete resume
// @Tags    resumes
// @Produce json
// @Param   id path string true "resume id (UUID)"
// @Security BearerAuth
// @Success 200 {object} presenter.Response{data=deleteResumeResponse}
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [delete]
func (h *ResumesHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := resumeID(c)
	if err != nil {
		return err
	}
	deleted, err := h.useCase.Delete(c.UserContext(), ownerID, id)
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, "resume deleted", deleteResumeResponse{ID: deleted})
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := jwt.UserID(c)
	if !ok {
		return uuid.Nil, apperr.Unauthorized("not authenticated")
	}
	return id, nil
}

// resumeID parses the :id param. A malformed id is reported exactly like an
// absent resume.
func resumeID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperr.NotFound(resume.MsgNotFound)
	}
	return id, nil
}
