package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bacompass/backend/internal/service"
)

// maxUploadSize 单个上传文件大小上限
const maxUploadSize = 50 << 20 // 50 MB

// UploadHandler 文件上传与列表接口
type UploadHandler struct {
	service *service.FileService
}

func NewUploadHandler(service *service.FileService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload 处理 multipart 文件上传，走分类流水线
func (h *UploadHandler) Upload(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if fileHeader.Size > maxUploadSize {
		respondError(c, http.StatusRequestEntityTooLarge, errors.New("file too large"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	result, err := h.service.Upload(c.Request.Context(), projectID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			respondError(c, http.StatusNotFound, err)
		case errors.Is(err, service.ErrEmptyFile):
			respondError(c, http.StatusBadRequest, err)
		default:
			respondError(c, http.StatusInternalServerError, err)
		}
		return
	}
	respondOK(c, http.StatusCreated, result)
}

// List 列出项目的上传文件
func (h *UploadHandler) List(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	files, err := h.service.ListByProject(projectID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondOK(c, http.StatusOK, files)
}
