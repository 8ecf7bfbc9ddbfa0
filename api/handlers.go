package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskdesk/commands"
	"taskdesk/domain"
	"taskdesk/storage"
)

// Register wires up all API routes on the provided Echo instance. Each route
// invokes exactly one command-layer operation and maps domain errors to HTTP
// statuses; the core itself stays transport-agnostic.
func Register(e *echo.Echo, repo storage.TaskRepository, logger *log.Logger) {
	e.GET("/api/tasks", listTasks(repo, logger))
	e.POST("/api/tasks", createTask(repo))
	e.GET("/api/tasks/:id", getTask(repo))
	e.PUT("/api/tasks/:id", updateTask(repo))
	e.POST("/api/tasks/:id/complete", completeTask(repo))
	e.DELETE("/api/tasks/:id", deleteTask(repo))
	e.GET("/healthz", healthz(repo))
}

func healthz(repo storage.TaskRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := repo.GetAll(c.Request().Context()); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	}
}

func listTasks(repo storage.TaskRepository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newListRequestMetrics(ctx, logger)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		fetchStart := time.Now()
		tasks, fetchErr := commands.List(ctx, repo)
		metrics.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(fetchErr)
			err = writeError(c, fetchErr)
			return err
		}
		metrics.SetTasksReturned(len(tasks))

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, tasksResponse{Tasks: tasks})
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func createTask(repo storage.TaskRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createTaskRequest
		if err := decodeBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		description := ""
		if req.Description != nil {
			description = *req.Description
		}
		task, err := commands.Create(c.Request().Context(), repo, req.Title, description)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, task)
	}
}

func getTask(repo storage.TaskRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid task id"})
		}
		task, err := commands.Get(c.Request().Context(), repo, id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func updateTask(repo storage.TaskRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid task id"})
		}
		var req updateTaskRequest
		if err := decodeBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		task, err := commands.Update(c.Request().Context(), repo, id, req.Title, req.Description)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func completeTask(repo storage.TaskRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid task id"})
		}
		task, err := commands.Complete(c.Request().Context(), repo, id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func deleteTask(repo storage.TaskRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid task id"})
		}
		if err := commands.Delete(c.Request().Context(), repo, id); err != nil {
			return writeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func decodeBody(c echo.Context, dst any) error {
	lr := io.LimitReader(c.Request().Body, requestBodyMaxSize)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// writeError maps domain failure kinds onto HTTP statuses. Every kind keeps
// its specific message so the client can tell the user what to correct.
func writeError(c echo.Context, err error) error {
	var verr domain.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Message, Kind: verr.Kind})
	}
	var nf domain.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: nf.Error()})
	}
	if errors.Is(err, domain.ErrInvalidID) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if errors.Is(err, domain.ErrAlreadyCompleted) {
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
