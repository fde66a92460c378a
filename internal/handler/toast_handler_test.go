package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/usm-dti/event-tracker-api/internal/models"
	"github.com/usm-dti/event-tracker-api/internal/service"
)

func newToastRouter() (*gin.Engine, *service.ToastService) {
	gin.SetMode(gin.TestMode)
	toasts := service.NewToastService(time.Minute, zap.NewNop(), nil)

	r := gin.New()
	h := NewToastHandler(toasts)
	r.GET("/toasts", h.List)
	r.DELETE("/toasts/:id", h.Dismiss)
	return r, toasts
}

func TestToastHandlerListEmpty(t *testing.T) {
	r, toasts := newToastRouter()
	defer toasts.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/toasts", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestToastHandlerListAndDismiss(t *testing.T) {
	r, toasts := newToastRouter()
	defer toasts.Close()

	pushed := toasts.Push("Evento creado con éxito", models.ToastSuccess)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/toasts", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w).Data.([]interface{})
	require.Len(t, data, 1)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodDelete, "/toasts/"+pushed.ID, nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.Empty(t, toasts.List())
}

func TestToastHandlerDismissUnknownID(t *testing.T) {
	r, toasts := newToastRouter()
	defer toasts.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/toasts/no-such-id", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
