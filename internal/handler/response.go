package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// respondOK 统一成功响应 {success: true, data: ...}
func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondError 统一失败响应 {success: false, error: ...}
func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

// parseID 解析路径参数中的数字 ID，非法时直接写 400 响应
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
