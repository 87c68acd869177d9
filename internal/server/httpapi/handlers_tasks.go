package httpapi

import (
	"errors"

	"github.com/dkolesnikov/taskvault/internal/common"
	"github.com/dkolesnikov/taskvault/internal/server/tasks"
	"github.com/dkolesnikov/taskvault/internal/server/users"
	"github.com/gofiber/fiber/v2"
)

const taskNotFoundMessage = "Task not found or access denied."

func (s *Server) listTasks(c *fiber.Ctx, principal *users.User) error {

	q := tasks.ListQuery{
		Status: tasks.Status(c.Query("status")),
		Search: c.Query("search"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
	}

	result, err := s.tasks.List(c.UserContext(), principal.ID, q)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(listTasksResponse{
		Tasks: result.Tasks,
		Pagination: paginationInfo{
			Page:  result.Page,
			Limit: result.Limit,
			Total: result.Total,
			Pages: result.Pages,
		},
	})
}

func (s *Server) createTask(c *fiber.Ctx, principal *users.User) error {
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	task, err := s.tasks.Create(c.UserContext(), principal.ID, req.Title, req.Description, req.Status)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

func (s *Server) updateTask(c *fiber.Ctx, principal *users.User) error {
	var req updateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	task, err := s.tasks.Update(c.UserContext(), principal.ID, c.Params("id"), tasks.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return respondMessage(c, fiber.StatusNotFound, taskNotFoundMessage)
		}
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(task)
}

func (s *Server) deleteTask(c *fiber.Ctx, principal *users.User) error {
	err := s.tasks.Delete(c.UserContext(), principal.ID, c.Params("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return respondMessage(c, fiber.StatusNotFound, taskNotFoundMessage)
		}
		return s.respondError(c, err)
	}

	return respondMessage(c, fiber.StatusOK, "Task deleted.")
}
