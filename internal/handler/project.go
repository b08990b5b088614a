package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bacompass/backend/internal/service"
)

// ProjectHandler 项目管理接口
type ProjectHandler struct {
	service *service.ProjectService
}

func NewProjectHandler(service *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// CreateProjectRequest 创建项目请求体
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	project, err := h.service.Create(req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNameEmpty):
			respondError(c, http.StatusBadRequest, err)
		default:
			respondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	respondOK(c, http.StatusCreated, project)
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.service.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondOK(c, http.StatusOK, projects)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := h.service.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			respondError(c, http.StatusNotFound, err)
		default:
			respondError(c, http.StatusInternalServerError, err)
		}
		return
	}
	respondOK(c, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			respondError(c, http.StatusNotFound, err)
		default:
			respondError(c, http.StatusInternalServerError, err)
		}
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "deleted"})
}

// SaveInterview 保存访谈产出的项目画像
func (h *ProjectHandler) SaveInterview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.InterviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	project, err := h.service.SaveInterview(id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			respondError(c, http.StatusNotFound, err)
		default:
			respondError(c, http.StatusInternalServerError, err)
		}
		return
	}
	respondOK(c, http.StatusOK, project)
}
