package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/artem13815/resumes/api/http/handlers"
	"github.com/artem13815/resumes/pkg/apperr"
	"github.com/artem13815/resumes/pkg/auth"
	"github.com/artem13815/resumes/pkg/resume"
	"github.com/artem13815/resumes/pkg/resume/mocks"
)

var longContent = strings.Repeat("experienced gopher ", 10)

type ResumesHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	useCase *mocks.MockUseCase
	owner   auth.User
	app     *fiber.App
}

func TestResumesHandlerSuite(t *testing.T) {
	suite.Run(t, new(ResumesHandlerSuite))
}

func (s *ResumesHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.useCase = mocks.NewMockUseCase(s.ctrl)
	s.owner = auth.User{ID: uuid.New(), Email: "ann@example.com", Name: "Ann"}

	h := handlers.NewResumesHandler(s.useCase, handlers.NewValidator())
	s.app = newApp()
	g := s.app.Group("/resumes", asUser(s.owner))
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.Get)
	g.Patch("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

func (s *ResumesHandlerSuite) TestCreate() {
	s.Run("created", func() {
		stored := resume.Resume{ID: uuid.New(), OwnerID: s.owner.ID, Title: "Go dev", Content: longContent, Status: resume.StatusApply}
		s.useCase.EXPECT().
			Create(gomock.Any(), s.owner.ID, resume.CreateInput{Title: "Go dev", Content: longContent}).
			Return(stored, nil)

		status, env := doJSON(s.T(), s.app, http.MethodPost, "/resumes", map[string]string{"title": "Go dev", "content": longContent})
		s.Equal(http.StatusCreated, status)

		var got resume.Resume
		s.Require().NoError(json.Unmarshal(env.Data, &got))
		s.Equal(stored.ID, got.ID)
		s.Equal(resume.StatusApply, got.Status)
	})

	s.Run("content too short", func() {
		status, env := doJSON(s.T(), s.app, http.MethodPost, "/resumes", map[string]string{"title": "Go dev", "content": "short"})
		s.Equal(http.StatusBadRequest, status)
		s.Contains(env.Fields, "content")
	})

	s.Run("title missing", func() {
		status, env := doJSON(s.T(), s.app, http.MethodPost, "/resumes", map[string]string{"content": longContent})
		s.Equal(http.StatusBadRequest, status)
		s.Contains(env.Fields, "title")
	})
}

func (s *ResumesHandlerSuite) TestList() {
	views := []resume.View{{ID: uuid.New(), AuthorName: "Ann", Title: "a", CreatedAt: time.Now()}}

	s.Run("default order is desc", func() {
		s.useCase.EXPECT().List(gomock.Any(), s.owner.ID, resume.SortDesc).Return(views, nil)

		status, env := doJSON(s.T(), s.app, http.MethodGet, "/resumes", nil)
		s.Equal(http.StatusOK, status)
		s.Contains(string(env.Data), `"authorName":"Ann"`)
		s.NotContains(string(env.Data), "authorId")
	})

	s.Run("asc in any case", func() {
		s.useCase.EXPECT().List(gomock.Any(), s.owner.ID, resume.SortAsc).Return(nil, nil)

		status, _ := doJSON(s.T(), s.app, http.MethodGet, "/resumes?sort=ASC", nil)
		s.Equal(http.StatusOK, status)
	})
}

func (s *ResumesHandlerSuite) TestGet() {
	s.Run("found", func() {
		id := uuid.New()
		s.useCase.EXPECT().Get(gomock.Any(), s.owner.ID, id).Return(resume.View{ID: id, AuthorName: "Ann"}, nil)

		status, env := doJSON(s.T(), s.app, http.MethodGet, "/resumes/"+id.String(), nil)
		s.Equal(http.StatusOK, status)
		s.Contains(string(env.Data), id.String())
	})

	s.Run("absent and malformed look the same", func() {
		s.useCase.EXPECT().Get(gomock.Any(), s.owner.ID, gomock.Any()).Return(resume.View{}, apperr.NotFound(resume.MsgNotFound))

		absentStatus, absent := doJSON(s.T(), s.app, http.MethodGet, "/resumes/"+uuid.NewString(), nil)
		malformedStatus, malformed := doJSON(s.T(), s.app, http.MethodGet, "/resumes/not-a-uuid", nil)
		s.Equal(http.StatusNotFound, absentStatus)
		s.Equal(absentStatus, malformedStatus)
		s.Equal(absent, malformed)
	})
}

func (s *ResumesHandlerSuite) TestUpdate() {
	id := uuid.New()

	s.Run("partial", func() {
		s.useCase.EXPECT().
			Update(gomock.Any(), s.owner.ID, id, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID, p resume.Patch) (resume.Resume, error) {
				s.Require().NotNil(p.Title)
				s.Equal("new", *p.Title)
				s.Nil(p.Content)
				return resume.Resume{ID: id, Title: "new"}, nil
			})

		status, _ := doJSON(s.T(), s.app, http.MethodPatch, "/resumes/"+id.String(), map[string]string{"title": "new"})
		s.Equal(http.StatusOK, status)
	})

	s.Run("both empty", func() {
		status, _ := doJSON(s.T(), s.app, http.MethodPatch, "/resumes/"+id.String(), map[string]string{"title": "", "content": ""})
		s.Equal(http.StatusBadRequest, status)
	})

	s.Run("short content", func() {
		status, env := doJSON(s.T(), s.app, http.MethodPatch, "/resumes/"+id.String(), map[string]string{"content": "short"})
		s.Equal(http.StatusBadRequest, status)
		s.Contains(env.Fields, "content")
	})

	s.Run("not found", func() {
		s.useCase.EXPECT().Update(gomock.Any(), s.owner.ID, id, gomock.Any()).Return(resume.Resume{}, apperr.NotFound(resume.MsgNotFound))

		status, env := doJSON(s.T(), s.app, http.MethodPatch, "/resumes/"+id.String(), map[string]string{"title": "new"})
		s.Equal(http.StatusNotFound, status)
		s.Equal(resume.MsgNotFound, env.Message)
	})
}

func (s *ResumesHandlerSuite) TestDelete() {
	id := uuid.New()
	s.useCase.EXPECT().Delete(gomock.Any(), s.owner.ID, id).Return(id, nil)

	status, env := doJSON(s.T(), s.app, http.MethodDelete, "/resumes/"+id.String(), nil)
	s.Equal(http.StatusOK, status)
	s.JSONEq(`{"id":"`+id.String()+`"}`, string(env.Data))
}

func TestResumesHandler_RequiresUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := handlers.NewResumesHandler(mocks.NewMockUseCase(ctrl), handlers.NewValidator())
	app := newApp()
	app.Get("/resumes", h.List)

	status, _ := doJSON(t, app, http.MethodGet, "/resumes", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", status)
	}
}
