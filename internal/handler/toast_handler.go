package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usm-dti/event-tracker-api/internal/service"
	"github.com/usm-dti/event-tracker-api/pkg/response"
)

// ToastHandler exposes the live notification queue.
type ToastHandler struct {
	service *service.ToastService
}

// NewToastHandler constructs the handler.
func NewToastHandler(svc *service.ToastService) *ToastHandler {
	return &ToastHandler{service: svc}
}

// List godoc
// @Summary Live notifications
// @Description Notifications not yet expired or dismissed, in arrival order
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /toasts [get]
func (h *ToastHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(), nil)
}

// Dismiss godoc
// @Summary Dismiss a notification
// @Description Removes a notification before its TTL elapses. Unknown ids are ignored.
// @Tags Notifications
// @Produce json
// @Param id path string true "Toast ID"
// @Success 204 {object} response.Envelope
// @Router /toasts/{id} [delete]
func (h *ToastHandler) Dismiss(c *gin.Context) {
	h.service.Dismiss(c.Param("id"))
	response.NoContent(c)
}
