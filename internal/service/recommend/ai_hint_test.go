package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bacompass/backend/internal/model"
)

type fakeChatClient struct {
	configured bool
	content    string
	err        error
}

func (f *fakeChatClient) Configured() bool {
	return f.configured
}

func (f *fakeChatClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f.content, f.err
}

func hintFrameworks() []model.Framework {
	return []model.Framework{
		{Key: "scrum-ba", Name: "Scrum BA Track"},
		{Key: "waterfall-ba", Name: "Waterfall BA Track"},
	}
}

func TestLLMHintProviderValidResponse(t *testing.T) {
	client := &fakeChatClient{
		configured: true,
		content:    "推荐如下：\n{\"recommended_framework\":\"scrum-ba\",\"rationale\":\"короткий цикл\"}",
	}
	provider := NewLLMHintProvider(client, time.Second)

	hint := provider.Hint(context.Background(), agileProfile(), hintFrameworks())
	if hint == nil {
		t.Fatal("expected hint, got nil")
	}
	if hint.FrameworkKey != "scrum-ba" || hint.Rationale != "короткий цикл" {
		t.Fatalf("unexpected hint: %+v", hint)
	}
}

func TestLLMHintProviderNotConfigured(t *testing.T) {
	provider := NewLLMHintProvider(&fakeChatClient{configured: false}, time.Second)
	if hint := provider.Hint(context.Background(), agileProfile(), hintFrameworks()); hint != nil {
		t.Fatalf("expected nil hint, got %+v", hint)
	}
}

func TestLLMHintProviderRequestError(t *testing.T) {
	client := &fakeChatClient{configured: true, err: errors.New("connection refused")}
	provider := NewLLMHintProvider(client, time.Second)
	if hint := provider.Hint(context.Background(), agileProfile(), hintFrameworks()); hint != nil {
		t.Fatalf("expected nil hint on error, got %+v", hint)
	}
}

func TestLLMHintProviderMalformedJSON(t *testing.T) {
	for _, content := range []string{"совсем не JSON", "{broken", `{"rationale":"нет ключа"}`} {
		client := &fakeChatClient{configured: true, content: content}
		provider := NewLLMHintProvider(client, time.Second)
		if hint := provider.Hint(context.Background(), agileProfile(), hintFrameworks()); hint != nil {
			t.Fatalf("content %q: expected nil hint, got %+v", content, hint)
		}
	}
}

func TestLLMHintProviderUnknownFramework(t *testing.T) {
	client := &fakeChatClient{
		configured: true,
		content:    `{"recommended_framework":"made-up","rationale":"x"}`,
	}
	provider := NewLLMHintProvider(client, time.Second)
	if hint := provider.Hint(context.Background(), agileProfile(), hintFrameworks()); hint != nil {
		t.Fatalf("expected nil hint for unknown framework, got %+v", hint)
	}
}
