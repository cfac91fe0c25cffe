package handlers

import (
	"net/http"

	"github.com/MrTochi/focus-backend/internal/auth"
	dom "github.com/MrTochi/focus-backend/internal/domain"
	"github.com/MrTochi/focus-backend/internal/dto"
	"github.com/MrTochi/focus-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TodoHandler handles todo CRUD for authenticated callers.
type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// Create godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateTodoRequest  true  "Todo body"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Router       /todos/create-todo [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c),
		req.Title, req.Description, req.DueDate.Ptr(), req.Reminder.Ptr(), dom.Priority(req.Priority))
	if err != nil {
		failFromService(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Todo created successfully",
		"success": true,
		"todo":    dto.TodoToResponse(t),
	})
}

// List godoc
// @Summary      List the caller's todos, newest first
// @Tags         todos
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /todos/get-todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Todos fetched successfully",
		"success": true,
		"todos":   dto.TodosToResponses(list),
	})
}

// GetByID godoc
// @Summary      Get a todo by ID
// @Tags         todos
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /todos/get-todo/{id} [get]
func (h *TodoHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Todo fetched successfully",
		"success": true,
		"todo":    dto.TodoToResponse(t),
	})
}

// Edit godoc
// @Summary      Partially update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Todo ID"
// @Param        body  body      dto.EditTodoRequest  true  "Fields to change"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /todos/edit-todo/{id} [put]
func (h *TodoHandler) Edit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.EditTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	patch := service.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.DueDate.Provided() {
		patch.DueDateSet = true
		patch.DueDate = req.DueDate.Ptr()
	}
	if req.Reminder.Provided() {
		patch.ReminderSet = true
		patch.Reminder = req.Reminder.Ptr()
	}
	if req.Priority != nil {
		p := dom.Priority(*req.Priority)
		patch.Priority = &p
	}

	t, err := h.svc.Edit(c.Request.Context(), id, patch)
	if err != nil {
		failFromService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Todo updated successfully",
		"success": true,
		"todo":    dto.TodoToResponse(t),
	})
}

// Toggle godoc
// @Summary      Toggle a todo's completed flag
// @Tags         todos
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /todos/complete-todo/{id} [post]
func (h *TodoHandler) Toggle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Toggle(c.Request.Context(), id)
	if err != nil {
		failFromService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Todo status toggled successfully",
		"success": true,
		"todo":    dto.TodoToResponse(t),
	})
}

// Delete godoc
// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /todos/delete-todo/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		failFromService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully", "success": true})
}
