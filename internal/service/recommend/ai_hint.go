package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/bacompass/backend/internal/model"
	"github.com/bacompass/backend/internal/utils"
)

// HintProvider 外部推荐提示的策略接口。
// 返回 nil 表示没有提示，算法路径照常打分；实现不允许让调用方失败。
type HintProvider interface {
	Hint(ctx context.Context, profile Profile, frameworks []model.Framework) *Hint
}

// ChatClient LLM 对话客户端接口（internal/pkg/llm.Client 实现）
type ChatClient interface {
	Configured() bool
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// LLMHintProvider 通过 LLM 获取推荐提示
type LLMHintProvider struct {
	client  ChatClient
	timeout time.Duration
}

func NewLLMHintProvider(client ChatClient, timeout time.Duration) *LLMHintProvider {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &LLMHintProvider{client: client, timeout: timeout}
}

const hintSystemPrompt = "你是业务分析方法论选型助手。根据项目画像从候选框架中选出最合适的一个，" +
	"只返回 JSON 对象：{\"recommended_framework\": \"<框架标识>\", \"rationale\": \"<一句话理由>\"}，不要输出其他内容。"

// Hint 调用 LLM 获取推荐提示。任何失败（未配置、超时、返回内容不可解析、
// 框架标识不在候选集合内）都降级为无提示，绝不向上抛错。
func (p *LLMHintProvider) Hint(ctx context.Context, profile Profile, frameworks []model.Framework) *Hint {
	if p.client == nil || !p.client.Configured() {
		klog.V(6).Infof("LLM 未配置，跳过推荐提示")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	content, err := p.client.Complete(ctx, hintSystemPrompt, buildHintPrompt(profile, frameworks))
	if err != nil {
		klog.V(6).Infof("获取推荐提示失败，走纯算法路径: %v", err)
		return nil
	}

	var hint Hint
	if err := json.Unmarshal([]byte(utils.ExtractJSON(content)), &hint); err != nil {
		klog.V(6).Infof("推荐提示内容不可解析，忽略: %v", err)
		return nil
	}
	if hint.FrameworkKey == "" {
		return nil
	}

	// 提示的框架必须在候选集合内
	for i := range frameworks {
		if frameworks[i].Key == hint.FrameworkKey {
			klog.V(6).Infof("LLM 推荐提示: key=%s", hint.FrameworkKey)
			return &hint
		}
	}
	klog.V(6).Infof("LLM 推荐的框架不在候选集合内，忽略: key=%s", hint.FrameworkKey)
	return nil
}

// buildHintPrompt 组装枚举全部候选框架和项目画像的提示词
func buildHintPrompt(profile Profile, frameworks []model.Framework) string {
	var sb strings.Builder
	sb.WriteString("候选框架：\n")
	for i := range frameworks {
		f := &frameworks[i]
		sb.WriteString(fmt.Sprintf("- %s: %s（标签: %s）%s\n", f.Key, f.Name, f.Tags, f.Description))
	}
	sb.WriteString("\n项目画像：\n")
	sb.WriteString(utils.ToJSON(profile))
	return sb.String()
}
