package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"k8s.io/klog/v2"

	"github.com/bacompass/backend/config"
)

// Client 文档文本抽取微服务客户端
// 抽取服务是独立部署的 Node 服务，负责编码识别与 docx/pdf 解析
type Client struct {
	BaseURL string
	Client  *http.Client
}

// NewClient 创建抽取服务客户端
func NewClient(cfg *config.Config) *Client {
	timeout := cfg.Extractor.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: cfg.Extractor.URL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured 检查抽取服务是否已配置
func (c *Client) Configured() bool {
	return c.BaseURL != ""
}

type extractResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Extract 上传文件内容并返回抽取出的纯文本
// 调用方应把失败视为"无文本"，仅按文件名分类
func (c *Client) Extract(ctx context.Context, fileName string, data []byte) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("extractor service not configured")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close form writer: %w", err)
	}

	url := c.BaseURL + "/extract"
	klog.V(6).Infof("发送文本抽取请求: url=%s, file=%s, size=%d", url, fileName, len(data))

	req, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extractor returned status %d: %s", resp.StatusCode, string(body))
	}

	var extractResp extractResponse
	if err := json.Unmarshal(body, &extractResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if extractResp.Error != "" {
		return "", fmt.Errorf("extractor error: %s", extractResp.Error)
	}

	return extractResp.Text, nil
}
