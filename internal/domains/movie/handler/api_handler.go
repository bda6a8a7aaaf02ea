package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"movielist-backend/internal/domains/movie/model"
	"movielist-backend/internal/domains/movie/service"
	"movielist-backend/internal/shared/response"
	"movielist-backend/internal/shared/utils"
	"movielist-backend/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// APIHandler exposes the movie workflow as JSON under /api/v1.
type APIHandler struct {
	service service.ServiceInterface
}

func NewAPIHandler(service service.ServiceInterface) *APIHandler {
	return &APIHandler{service: service}
}

// ListMovies handles GET /movies
func (h *APIHandler) ListMovies(c *gin.Context) {
	movies, err := h.service.ListMovies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, movies, &response.Meta{Total: len(movies)})
}

// GetMovie handles GET /movies/:id
func (h *APIHandler) GetMovie(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	movie, err := h.service.GetMovie(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, movie)
}

// UpdateMovie handles PUT /movies/:id
func (h *APIHandler) UpdateMovie(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	movie, err := h.service.UpdateReview(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, movie)
}

// DeleteMovie handles DELETE /movies/:id
func (h *APIHandler) DeleteMovie(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteMovie(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// SearchMovies handles GET /search?title=
func (h *APIHandler) SearchMovies(c *gin.Context) {
	form := model.FindMovieForm{Title: c.Query("title")}
	form.Normalize()
	if err := form.Validate(); err != nil {
		respondError(c, err)
		return
	}

	result, err := h.service.SearchExternal(c.Request.Context(), form.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Results, &response.Meta{Total: len(result.Results)})
}

// ImportMovie handles POST /movies
func (h *APIHandler) ImportMovie(c *gin.Context) {
	var req model.ImportMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	movie, err := h.service.AddFromExternal(c.Request.Context(), req.ExternalID())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, movie)
}

// RecomputeRankings handles POST /movies/rankings/recompute
func (h *APIHandler) RecomputeRankings(c *gin.Context) {
	movies, err := h.service.RecomputeRankings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, movies, &response.Meta{Total: len(movies)})
}

// ExportMovies handles GET /movies/export
func (h *APIHandler) ExportMovies(c *gin.Context) {
	f, err := h.service.ExportMovies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("failed to close export workbook", err)
		}
	}()

	filename := fmt.Sprintf("movies_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		logger.Error("failed to write export workbook", err)
	}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := utils.ParseID(raw)
	if err != nil {
		respondError(c, model.NewInvalidMovieID(raw))
		return 0, false
	}
	return id, true
}
