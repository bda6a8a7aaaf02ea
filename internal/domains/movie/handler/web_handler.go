package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"movielist-backend/internal/domains/movie/gateway"
	"movielist-backend/internal/domains/movie/model"
	"movielist-backend/internal/domains/movie/service"
	"movielist-backend/internal/shared/utils"
	"movielist-backend/pkg/flash"
	"movielist-backend/pkg/logger"
)

// Flash texts shown by the HTML workflow.
const (
	MsgFilmsFound       = "Film found successfully."
	MsgNoFilmsFound     = "No films found."
	MsgSearchFailed     = "Error while trying to get movies."
	MsgNoMovieID        = "No movie ID provided."
	MsgExternalNotFound = "Failed to find movie in the database."
	MsgSaveFailed       = "Failed to save the movie. Please try again."
	MsgUpdated          = "Movie updated."
	MsgUpdateFailed     = "Failed to update the movie. Please try again."
	MsgDeleted          = "Movie deleted."
	MsgDeleteFailed     = "Failed to delete the movie. Please try again."
)

// WebHandler serves the server-rendered pages.
type WebHandler struct {
	service service.ServiceInterface
	flash   *flash.Manager
}

func NewWebHandler(service service.ServiceInterface, flashes *flash.Manager) *WebHandler {
	return &WebHandler{
		service: service,
		flash:   flashes,
	}
}

// Home handles GET /
func (h *WebHandler) Home(c *gin.Context) {
	movies, err := h.service.ListMovies(c.Request.Context())
	if err != nil {
		logger.Error("failed to list movies", err)
		h.renderError(c, http.StatusInternalServerError, "Could not load your movies.")
		return
	}

	h.render(c, http.StatusOK, "index.html", gin.H{
		"Movies": movies,
	})
}

// AddMovie handles GET and POST /add_movie
func (h *WebHandler) AddMovie(c *gin.Context) {
	var form model.FindMovieForm

	if c.Request.Method == http.MethodGet {
		h.renderAdd(c, http.StatusOK, form, nil)
		return
	}

	_ = c.ShouldBind(&form)
	form.Normalize()
	if err := form.Validate(); err != nil {
		h.renderAdd(c, http.StatusUnprocessableEntity, form, fieldErrors(err))
		return
	}

	result, err := h.service.SearchExternal(c.Request.Context(), form.Title)
	switch {
	case err == nil:
		h.flash.Add(c, flash.CategorySuccess, MsgFilmsFound)
		h.render(c, http.StatusOK, "select.html", gin.H{
			"Title":   "Select Movie",
			"Results": result.Results,
		})
	case errors.Is(err, gateway.ErrNoResults):
		h.flash.Add(c, flash.CategoryInfo, MsgNoFilmsFound)
		h.renderAdd(c, http.StatusOK, form, nil)
	default:
		logger.ErrorWithFields("movie search failed", err, map[string]interface{}{
			"title": form.Title,
		})
		h.flash.Add(c, flash.CategoryError, MsgSearchFailed)
		h.renderAdd(c, http.StatusOK, form, nil)
	}
}

// FindMovie handles GET /find?id={external_id}
func (h *WebHandler) FindMovie(c *gin.Context) {
	externalID := c.Query("id")
	if externalID == "" {
		h.flash.Add(c, flash.CategoryError, MsgNoMovieID)
		c.Redirect(http.StatusFound, "/add_movie")
		return
	}

	movie, err := h.service.AddFromExternal(c.Request.Context(), externalID)
	if err != nil {
		var msg string
		switch {
		case model.IsMovieTitleExists(err):
			msg = model.GetErrorMessage(err)
		case errors.Is(err, gateway.ErrExternalMovieNotFound),
			errors.Is(err, gateway.ErrUpstream),
			model.GetErrorCode(err) == model.CodeInvalidMovie:
			msg = MsgExternalNotFound
		default:
			msg = MsgSaveFailed
		}
		logger.ErrorWithFields("failed to add movie", err, map[string]interface{}{
			"external_id": externalID,
		})
		h.flash.Add(c, flash.CategoryError, msg)
		h.renderAdd(c, http.StatusOK, model.FindMovieForm{}, nil)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/edit_movie/%d", movie.ID))
}

// EditMovie handles GET and POST /edit_movie/:id
func (h *WebHandler) EditMovie(c *gin.Context) {
	movie, ok := h.loadMovie(c)
	if !ok {
		return
	}

	if c.Request.Method == http.MethodGet {
		h.renderEdit(c, http.StatusOK, movie, model.EditFormFor(movie), nil)
		return
	}

	var form model.EditMovieForm
	_ = c.ShouldBind(&form)
	form.Normalize()
	if err := form.Validate(); err != nil {
		h.renderEdit(c, http.StatusUnprocessableEntity, movie, form, fieldErrors(err))
		return
	}

	if _, err := h.service.UpdateReview(c.Request.Context(), movie.ID, form.ToRequest()); err != nil {
		if model.IsMovieNotFound(err) {
			h.renderError(c, http.StatusNotFound, "Movie not found.")
			return
		}
		logger.ErrorWithFields("failed to update movie", err, map[string]interface{}{
			"movie_id": movie.ID,
		})
		h.flash.Add(c, flash.CategoryError, MsgUpdateFailed)
		h.renderEdit(c, http.StatusInternalServerError, movie, form, nil)
		return
	}

	h.flash.Add(c, flash.CategorySuccess, MsgUpdated)
	c.Redirect(http.StatusFound, "/")
}

// DeleteMovie handles POST /delete_movie/:id
func (h *WebHandler) DeleteMovie(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		h.renderError(c, http.StatusNotFound, "Movie not found.")
		return
	}

	if err := h.service.DeleteMovie(c.Request.Context(), id); err != nil {
		if model.IsMovieNotFound(err) {
			h.renderError(c, http.StatusNotFound, "Movie not found.")
			return
		}
		h.flash.Add(c, flash.CategoryError, MsgDeleteFailed)
		c.Redirect(http.StatusFound, "/")
		return
	}

	h.flash.Add(c, flash.CategorySuccess, MsgDeleted)
	c.Redirect(http.StatusFound, "/")
}

func (h *WebHandler) loadMovie(c *gin.Context) (*model.Movie, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		h.renderError(c, http.StatusNotFound, "Movie not found.")
		return nil, false
	}

	movie, err := h.service.GetMovie(c.Request.Context(), id)
	if err != nil {
		if model.IsMovieNotFound(err) {
			h.renderError(c, http.StatusNotFound, "Movie not found.")
		} else {
			logger.ErrorWithFields("failed to load movie", err, map[string]interface{}{"movie_id": id})
			h.renderError(c, http.StatusInternalServerError, "Could not load the movie.")
		}
		return nil, false
	}
	return movie, true
}

func (h *WebHandler) renderAdd(c *gin.Context, status int, form model.FindMovieForm, errs map[string]string) {
	h.render(c, status, "add.html", gin.H{
		"Title":  "Add Movie",
		"Form":   form,
		"Errors": errs,
	})
}

func (h *WebHandler) renderEdit(c *gin.Context, status int, movie *model.Movie, form model.EditMovieForm, errs map[string]string) {
	h.render(c, status, "edit.html", gin.H{
		"Title":  "Edit " + movie.Title,
		"Movie":  movie,
		"Form":   form,
		"Errors": errs,
	})
}

func (h *WebHandler) renderError(c *gin.Context, status int, message string) {
	h.render(c, status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}

// render adds the pending flash messages to data before drawing the page.
func (h *WebHandler) render(c *gin.Context, status int, name string, data gin.H) {
	if errs, _ := data["Errors"].(map[string]string); errs == nil {
		data["Errors"] = map[string]string{}
	}
	data["Flashes"] = h.flash.Pop(c)
	c.HTML(status, name, data)
}
