package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"taskNotes/internal/logger"
	"taskNotes/internal/render"
	"taskNotes/internal/service"
	"taskNotes/web"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService TaskService
	Renderer    *render.Renderer
}

func NewTaskHandler(taskService TaskService, renderer *render.Renderer) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
		Renderer:    renderer,
	}
}

// Routes wires the form-and-redirect surface: list/edit views, the four
// mutations, health check and static assets.
func (h *TaskHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListTasks)
	r.Post("/add", h.AddTask)
	r.Get("/edit/{id}", h.EditTaskForm)
	r.Post("/edit/{id}", h.UpdateTask)
	r.Post("/delete/{id}", h.DeleteTask)
	r.Post("/toggle/{id}", h.ToggleTask)

	r.Get("/health", h.HealthCheck)
	r.Handle("/static/*", http.StripPrefix("/static/",
		http.FileServer(http.FS(web.StaticFS()))))

	return r
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search_query")

	tasks, err := h.TaskService.List(r.Context(), query)
	if err != nil {
		h.serverError(w, r, "list tasks", err)
		return
	}

	page := render.ListPage{
		Tasks:       tasks,
		SearchQuery: query,
		Counts:      render.CountTasks(tasks),
		Flash:       popFlash(w, r),
	}
	if err := h.Renderer.ListPage(w, page); err != nil {
		logger.Error("HTTP: render listing", err)
	}
}

func (h *TaskHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	title := r.PostFormValue("title")
	description := r.PostFormValue("description")

	created, err := h.TaskService.Create(r.Context(), title, description)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			// Re-render the listing with field errors and the submitted
			// values; nothing was persisted.
			tasks, listErr := h.TaskService.List(r.Context(), "")
			if listErr != nil {
				h.serverError(w, r, "list tasks after failed add", listErr)
				return
			}

			w.WriteHeader(http.StatusUnprocessableEntity)
			page := render.ListPage{
				Tasks:  tasks,
				Counts: render.CountTasks(tasks),
				Form:   render.TaskForm{Title: title, Description: description},
				Errors: fieldErrors(vErr),
			}
			if rErr := h.Renderer.ListPage(w, page); rErr != nil {
				logger.Error("HTTP: render listing", rErr)
			}
			return
		}
		h.serverError(w, r, "create task", err)
		return
	}

	setFlash(w, flashSuccess, fmt.Sprintf("Task %q has been created.", created.Title))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *TaskHandler) EditTaskForm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	t, err := h.TaskService.GetTaskByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, "get task", err)
		return
	}

	page := render.EditPage{
		Task:  t,
		Form:  render.TaskForm{Title: t.Title, Description: t.Description},
		Flash: popFlash(w, r),
	}
	if err := h.Renderer.EditPage(w, page); err != nil {
		logger.Error("HTTP: render edit form", err)
	}
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	title := r.PostFormValue("title")
	description := r.PostFormValue("description")

	updated, err := h.TaskService.Update(r.Context(), id, title, description)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(w, r)
			return
		}

		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			t, getErr := h.TaskService.GetTaskByID(r.Context(), id)
			if getErr != nil {
				if errors.Is(getErr, service.ErrNotFound) {
					h.notFound(w, r)
					return
				}
				h.serverError(w, r, "get task after failed update", getErr)
				return
			}

			w.WriteHeader(http.StatusUnprocessableEntity)
			page := render.EditPage{
				Task:   t,
				Form:   render.TaskForm{Title: title, Description: description},
				Errors: fieldErrors(vErr),
			}
			if rErr := h.Renderer.EditPage(w, page); rErr != nil {
				logger.Error("HTTP: render edit form", rErr)
			}
			return
		}
		h.serverError(w, r, "update task", err)
		return
	}

	setFlash(w, flashSuccess, fmt.Sprintf("Task %q has been updated.", updated.Title))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	t, err := h.TaskService.GetTaskByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, "get task for delete", err)
		return
	}

	if err := h.TaskService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, "delete task", err)
		return
	}

	setFlash(w, flashSuccess, fmt.Sprintf("Task %q has been deleted.", t.Title))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	t, err := h.TaskService.ToggleCompleted(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, "toggle task", err)
		return
	}

	statusText := "marked as incomplete"
	if t.IsCompleted {
		statusText = "completed"
	}
	setFlash(w, flashSuccess, fmt.Sprintf("Task %q has been %s.", t.Title, statusText))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: health check", err)
		http.Error(w, "unhealthy", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// taskID parses the {id} route parameter. A malformed id is handled like a
// missing task: notice plus redirect, never a fatal error.
func (h *TaskHandler) taskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Warn("HTTP: malformed task id",
			zap.String("id", chi.URLParam(r, "id")),
			zap.String("path", r.URL.Path))
		h.notFound(w, r)
		return uuid.Nil, false
	}
	return id, true
}

func (h *TaskHandler) notFound(w http.ResponseWriter, r *http.Request) {
	setFlash(w, flashError, "Task not found. It may have been deleted.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *TaskHandler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger.Error("HTTP: "+op, err,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func fieldErrors(vErr *service.ValidationError) render.FormErrors {
	return render.FormErrors{vErr.Field: vErr.Message()}
}
