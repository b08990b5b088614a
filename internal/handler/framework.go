package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bacompass/backend/internal/service"
	"github.com/bacompass/backend/internal/service/recommend"
)

// FrameworkHandler 框架目录与推荐接口
type FrameworkHandler struct {
	service *service.FrameworkService
}

func NewFrameworkHandler(service *service.FrameworkService) *FrameworkHandler {
	return &FrameworkHandler{service: service}
}

func (h *FrameworkHandler) List(c *gin.Context) {
	frameworks, err := h.service.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondOK(c, http.StatusOK, frameworks)
}

// Recommend 按项目画像推荐框架，请求体即画像字段
func (h *FrameworkHandler) Recommend(c *gin.Context) {
	var profile recommend.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	results, err := h.service.Recommend(c.Request.Context(), profile)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFrameworksAvailable):
			respondError(c, http.StatusNotFound, err)
		default:
			respondError(c, http.StatusInternalServerError, err)
		}
		return
	}
	respondOK(c, http.StatusOK, results)
}
