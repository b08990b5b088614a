package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bacompass/backend/internal/model"
	"github.com/bacompass/backend/internal/service"
	"github.com/bacompass/backend/internal/service/statemachine"
)

// RoadmapHandler 路线图、任务与工件状态接口
type RoadmapHandler struct {
	service *service.RoadmapService
}

func NewRoadmapHandler(service *service.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{service: service}
}

// GenerateRoadmapRequest 生成路线图请求体，框架用数字 ID 或标识二选一
type GenerateRoadmapRequest struct {
	FrameworkID  uint   `json:"framework_id"`
	FrameworkKey string `json:"framework_key"`
}

// UpdateStatusRequest 状态更新请求体
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Generate 按选定框架为项目生成路线图
func (h *RoadmapHandler) Generate(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req GenerateRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.FrameworkID == 0 && req.FrameworkKey == "" {
		respondError(c, http.StatusBadRequest, errors.New("framework_id or framework_key is required"))
		return
	}

	var roadmap *model.ProjectRoadmap
	var err error
	if req.FrameworkID != 0 {
		roadmap, err = h.service.Generate(projectID, req.FrameworkID)
	} else {
		roadmap, err = h.service.GenerateByKey(projectID, req.FrameworkKey)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound),
			errors.Is(err, service.ErrFrameworkNotFound):
			respondError(c, http.StatusNotFound, err)
		default:
			respondError(c, http.StatusInternalServerError, err)
		}
		return
	}
	respondOK(c, http.StatusCreated, roadmap)
}

// GetActive 获取项目当前激活的路线图
func (h *RoadmapHandler) GetActive(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	roadmap, err := h.service.GetActive(projectID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoadmapNotFound):
			respondError(c, http.StatusNotFound, err)
		default:
			respondError(c, http.StatusInternalServerError, err)
		}
		return
	}
	respondOK(c, http.StatusOK, roadmap)
}

func (h *RoadmapHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrRoadmapNotFound):
			respondError(c, http.StatusNotFound, err)
		default:
			respondError(c, http.StatusInternalServerError, err)
		}
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "deleted"})
}

// UpdateTaskStatus 更新任务状态（经状态机校验）
func (h *RoadmapHandler) UpdateTaskStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	task, err := h.service.UpdateTaskStatus(id, req.Status)
	if err != nil {
		h.respondStatusError(c, err, service.ErrTaskNotFound)
		return
	}
	respondOK(c, http.StatusOK, task)
}

// UpdateArtifactStatus 更新工件状态（经状态机校验，版本 +1）
func (h *RoadmapHandler) UpdateArtifactStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	artifact, err := h.service.UpdateArtifactStatus(id, req.Status)
	if err != nil {
		h.respondStatusError(c, err, service.ErrArtifactNotFound)
		return
	}
	respondOK(c, http.StatusOK, artifact)
}

// ListArtifacts 列出项目的全部工件
func (h *RoadmapHandler) ListArtifacts(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	artifacts, err := h.service.ListArtifacts(projectID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondOK(c, http.StatusOK, artifacts)
}

// respondStatusError 状态更新错误的统一映射：
// 未知状态 400，目标不存在 404，非法迁移 409，其余 500
func (h *RoadmapHandler) respondStatusError(c *gin.Context, err, notFound error) {
	var transitionErr *statemachine.InvalidStateTransitionError
	switch {
	case errors.Is(err, service.ErrUnknownStatus):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, notFound):
		respondError(c, http.StatusNotFound, err)
	case errors.As(err, &transitionErr):
		respondError(c, http.StatusConflict, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
