package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"leetcoach/internal/captcha/handler/mocks"
	"leetcoach/internal/captcha/models"
	dErrors "leetcoach/pkg/domain-errors"
	"leetcoach/pkg/requestcontext"
)

type CaptchaHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
	now     time.Time
}

func TestCaptchaHandlerSuite(t *testing.T) {
	suite.Run(t, new(CaptchaHandlerSuite))
}

func (s *CaptchaHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.now = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	s.router = chi.NewRouter()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), s.now)))
		})
	})
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *CaptchaHandlerSuite) do(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *CaptchaHandlerSuite) TestIssueSweepsThenIssues() {
	gomock.InOrder(
		s.service.EXPECT().SweepExpired(gomock.Any(), s.now).Return(3, nil),
		s.service.EXPECT().Issue(gomock.Any(), s.now).Return(&models.Challenge{
			ID: "c-1", Question: "What is 2 + 2?", Answer: "4", ExpiresAt: s.now.Add(5 * time.Minute),
		}, nil),
	)

	rec := s.do("/api/captcha", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(map[string]any{"captcha_id": "c-1", "question": "What is 2 + 2?", "captcha_image": ""}, body)
	s.NotContains(rec.Body.String(), `"4"`, "answer never leaves the server")
}

func (s *CaptchaHandlerSuite) TestIssueSurvivesSweepFailure() {
	s.service.EXPECT().SweepExpired(gomock.Any(), gomock.Any()).Return(0, errors.New("db locked"))
	s.service.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(&models.Challenge{ID: "c-2", Question: "What is 3 - 1?"}, nil)

	rec := s.do("/api/captcha", "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *CaptchaHandlerSuite) TestIssueFailure() {
	s.service.EXPECT().SweepExpired(gomock.Any(), gomock.Any()).Return(0, nil)
	s.service.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(nil, dErrors.New(dErrors.CodeInternal, "failed to issue captcha"))

	rec := s.do("/api/captcha", "")
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *CaptchaHandlerSuite) TestVerify() {
	s.Run("solved", func() {
		s.service.EXPECT().Verify(gomock.Any(), "c-1", " 4 ", s.now).Return(true, nil)
		rec := s.do("/api/captcha/test", `{"captcha_id":"c-1","captcha_answer":" 4 "}`)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"success":true}`, rec.Body.String())
	})

	s.Run("empty answer is still checked", func() {
		s.service.EXPECT().Verify(gomock.Any(), "c-1", "", s.now).Return(false, nil)
		rec := s.do("/api/captcha/test", `{"captcha_id":"c-1","captcha_answer":""}`)
		s.JSONEq(`{"success":false}`, rec.Body.String())
	})

	s.Run("missing fields", func() {
		for _, body := range []string{`{"captcha_id":"c-1"}`, `{"captcha_answer":"4"}`, `{}`} {
			rec := s.do("/api/captcha/test", body)
			s.Equal(http.StatusOK, rec.Code)
			s.JSONEq(`{"success":false,"error":"Missing captcha_id or answer"}`, rec.Body.String())
		}
	})

	s.Run("malformed json", func() {
		rec := s.do("/api/captcha/test", `{"captcha_id":`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("store failure", func() {
		s.service.EXPECT().Verify(gomock.Any(), "c-9", "1", s.now).
			Return(false, dErrors.Wrap(context.DeadlineExceeded, dErrors.CodeInternal, "failed to verify captcha"))
		rec := s.do("/api/captcha/test", `{"captcha_id":"c-9","captcha_answer":"1"}`)
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}
