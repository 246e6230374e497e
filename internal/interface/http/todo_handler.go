package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskvault/internal/application"
	"github.com/oksasatya/taskvault/internal/domain/entity"
	"github.com/oksasatya/taskvault/internal/domain/repository"
	"github.com/oksasatya/taskvault/internal/interface/middleware"
	"github.com/oksasatya/taskvault/pkg/response"
	"github.com/oksasatya/taskvault/pkg/validation"
)

// TodoHandler serves the owned-resource routes. Every method reads the
// authenticated user ID from the context the gate populated and passes it
// down, so a todo belonging to someone else is a 404 here, never a 403.
type TodoHandler struct {
	Svc    *application.TodoService
	Logger *logrus.Logger
}

func NewTodoHandler(svc *application.TodoService, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{Svc: svc, Logger: logger}
}

type createTodoRequest struct {
	Text      string `json:"text" binding:"required"`
	Completed bool   `json:"completed"`
}

type updateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

func todoJSON(t *entity.Todo) gin.H {
	return gin.H{
		"id":           t.ID,
		"owner_id":     t.OwnerID,
		"text":         t.Text,
		"completed":    t.Completed,
		"completed_at": t.CompletedAt,
		"created_at":   t.CreatedAt,
		"updated_at":   t.UpdatedAt,
	}
}

// idParam validates the :id path segment. A malformed ID gets the same 404
// as an unknown one.
func idParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func notFound(c *gin.Context) {
	resp := response.Error[any](c, http.StatusNotFound, "not found", nil)
	c.JSON(resp.Status, resp)
}

// Create handles POST /todos.
func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	ownerID := c.GetString(middleware.CtxUserIDKey)
	t, err := h.Svc.Create(c.Request.Context(), ownerID, req.Text, req.Completed)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("create todo failed")
		}
		resp := response.Error[any](c, http.StatusBadRequest, "create failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"todo": todoJSON(t)}, "created")
	c.JSON(resp.Status, resp)
}

// List handles GET /todos, scoped to the caller.
func (h *TodoHandler) List(c *gin.Context) {
	ownerID := c.GetString(middleware.CtxUserIDKey)
	todos, err := h.Svc.List(c.Request.Context(), ownerID)
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "list failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	out := make([]gin.H, 0, len(todos))
	for _, t := range todos {
		out = append(out, todoJSON(t))
	}
	resp := response.Success(c, http.StatusOK, gin.H{"todos": out}, "todos")
	c.JSON(resp.Status, resp)
}

// Get handles GET /todos/:id.
func (h *TodoHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		notFound(c)
		return
	}
	ownerID := c.GetString(middleware.CtxUserIDKey)

	t, err := h.Svc.Get(c.Request.Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c)
			return
		}
		resp := response.Error[any](c, http.StatusBadRequest, "get failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"todo": todoJSON(t)}, "todo")
	c.JSON(resp.Status, resp)
}

// Update handles PATCH /todos/:id.
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		notFound(c)
		return
	}
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	ownerID := c.GetString(middleware.CtxUserIDKey)

	t, err := h.Svc.Update(c.Request.Context(), id, ownerID, application.UpdateTodoInput{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c)
			return
		}
		resp := response.Error[any](c, http.StatusBadRequest, "update failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"todo": todoJSON(t)}, "updated")
	c.JSON(resp.Status, resp)
}

// Delete handles DELETE /todos/:id and returns the removed todo.
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		notFound(c)
		return
	}
	ownerID := c.GetString(middleware.CtxUserIDKey)

	t, err := h.Svc.Delete(c.Request.Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c)
			return
		}
		resp := response.Error[any](c, http.StatusBadRequest, "delete failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"todo": todoJSON(t)}, "deleted")
	c.JSON(resp.Status, resp)
}
