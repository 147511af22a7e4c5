package system

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/holmes-app/materialgirl/internal/mocks"
)

func newRouter(t *testing.T) (*gin.Engine, *mocks.MockIPinger) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	pinger := mocks.NewMockIPinger(ctrl)
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	r := gin.New()
	New(pinger, log).RegisterRoutes(r)
	return r, pinger
}

func TestController_Liveness(t *testing.T) {
	r, _ := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/liveness", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}

func TestController_Readyness(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		r, pinger := newRouter(t)
		pinger.EXPECT().Ping(gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyness", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
	})

	t.Run("storage down", func(t *testing.T) {
		r, pinger := newRouter(t)
		pinger.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyness", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"not ready","error":"connection refused"}`, w.Body.String())
	})
}
