package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/bacompass/backend/config"
)

// ConfigHandler 运行配置接口，读写都只暴露非敏感字段
type ConfigHandler struct {
	cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// UpdateConfigRequest 可在运行时调整的配置子集，零值表示不修改该项
type UpdateConfigRequest struct {
	LLM        *LLMConfigRequest        `json:"llm,omitempty"`
	Classifier *ClassifierConfigRequest `json:"classifier,omitempty"`
	Extractor  *ExtractorConfigRequest  `json:"extractor,omitempty"`
}

type LLMConfigRequest struct {
	APIURL string `json:"api_url,omitempty"`
	APIKey string `json:"api_key,omitempty"`
	Model  string `json:"model,omitempty"`
}

type ClassifierConfigRequest struct {
	AutoCreateThreshold float64 `json:"auto_create_threshold,omitempty"`
}

type ExtractorConfigRequest struct {
	URL string `json:"url,omitempty"`
}

func (h *ConfigHandler) Get(c *gin.Context) {
	respondOK(c, http.StatusOK, h.safeView())
}

func (h *ConfigHandler) Update(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	if req.LLM != nil {
		if req.LLM.APIURL != "" {
			h.cfg.LLM.APIURL = req.LLM.APIURL
		}
		if req.LLM.APIKey != "" {
			h.cfg.LLM.APIKey = req.LLM.APIKey
		}
		if req.LLM.Model != "" {
			h.cfg.LLM.Model = req.LLM.Model
		}
	}
	if req.Classifier != nil && req.Classifier.AutoCreateThreshold != 0 {
		if req.Classifier.AutoCreateThreshold < 0 || req.Classifier.AutoCreateThreshold > 1 {
			respondError(c, http.StatusBadRequest, errors.New("auto_create_threshold must be in (0, 1]"))
			return
		}
		h.cfg.Classifier.AutoCreateThreshold = req.Classifier.AutoCreateThreshold
	}
	if req.Extractor != nil && req.Extractor.URL != "" {
		h.cfg.Extractor.URL = req.Extractor.URL
	}

	config.UpdateConfig(h.cfg)
	if err := h.cfg.Save(config.Path()); err != nil {
		// 持久化失败不回滚内存配置，下次启动仍用旧文件
		klog.Errorf("保存配置文件失败: %v", err)
		respondError(c, http.StatusInternalServerError, errors.New("failed to persist config"))
		return
	}

	klog.V(6).Infof("运行配置已更新: model=%s, threshold=%.2f", h.cfg.LLM.Model, h.cfg.Classifier.AutoCreateThreshold)
	respondOK(c, http.StatusOK, h.safeView())
}

// safeView 返回不含密钥的配置视图
func (h *ConfigHandler) safeView() gin.H {
	return gin.H{
		"server": gin.H{
			"mode": h.cfg.Server.Mode,
		},
		"database": gin.H{
			"type": h.cfg.Database.Type,
		},
		"llm": gin.H{
			"model":      h.cfg.LLM.Model,
			"configured": h.cfg.LLM.APIKey != "",
		},
		"classifier": gin.H{
			"auto_create_threshold": h.cfg.Classifier.AutoCreateThreshold,
		},
		"extractor": gin.H{
			"configured": h.cfg.Extractor.URL != "",
		},
	}
}
