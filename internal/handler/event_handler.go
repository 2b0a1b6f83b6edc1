package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bizdir/internal/pkg/response"
	"github.com/xxxsen/bizdir/internal/service"
)

type EventHandler struct {
	events *service.EventService
}

func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

func (h *EventHandler) List(c *gin.Context) {
	upcoming, _ := strconv.ParseBool(c.DefaultQuery("upcoming", "false"))
	limit, _ := parsePage(c)
	items, err := h.events.List(c.Request.Context(), c.Query("state"), upcoming, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *EventHandler) Get(c *gin.Context) {
	item, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req service.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "invalid request")
		return
	}
	item, err := h.events.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *EventHandler) Update(c *gin.Context) {
	var req service.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "invalid request")
		return
	}
	item, err := h.events.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
