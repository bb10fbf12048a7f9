package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prodlens/backend/internal/domain"
)

func TestAskProduct_RequiresQuestionAndContext(t *testing.T) {
	completion := &fakeCompletion{reply: "answer"}
	service := NewAskService(completion)

	if _, err := service.AskProduct(context.Background(), "", "some context"); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("missing question error = %v, want ErrInvalidRequest", err)
	}
	if _, err := service.AskProduct(context.Background(), "Is it loud?", "  "); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("missing context error = %v, want ErrInvalidRequest", err)
	}
	if len(completion.calls) != 0 {
		t.Error("validation failures must not reach the completion service")
	}
}

func TestAskProduct_EmbedsContext(t *testing.T) {
	completion := &fakeCompletion{reply: "Not very loud."}
	service := NewAskService(completion)

	got, err := service.AskProduct(context.Background(), "Is it loud?", "Name: Silent Fan\nPrice: ₹2,000")
	if err != nil {
		t.Fatalf("AskProduct() error = %v", err)
	}
	if got != "Not very loud." {
		t.Errorf("answer = %q", got)
	}

	call := completion.calls[0]
	if !strings.Contains(call.prompt, "Name: Silent Fan") {
		t.Error("prompt must carry the product context")
	}
	if !strings.Contains(call.prompt, "User Question: Is it loud?") {
		t.Error("prompt must carry the question")
	}
	if call.opts.Temperature != completionTemperature {
		t.Errorf("Temperature = %v, want %v", call.opts.Temperature, completionTemperature)
	}
}

func TestChat_RequiresMessage(t *testing.T) {
	completion := &fakeCompletion{reply: "hi"}
	service := NewAskService(completion)

	if _, err := service.Chat(context.Background(), "   "); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("error = %v, want ErrInvalidRequest", err)
	}
}

func TestChat_UsesConversationalSettings(t *testing.T) {
	completion := &fakeCompletion{reply: "Happy to help."}
	service := NewAskService(completion)

	got, err := service.Chat(context.Background(), "What should I look for in a laptop?")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "Happy to help." {
		t.Errorf("reply = %q", got)
	}

	call := completion.calls[0]
	if call.opts.Temperature != chatTemperature {
		t.Errorf("Temperature = %v, want %v", call.opts.Temperature, chatTemperature)
	}
	if call.opts.MaxOutputTokens != chatTokenCeiling {
		t.Errorf("MaxOutputTokens = %d, want %d", call.opts.MaxOutputTokens, chatTokenCeiling)
	}
	if !strings.Contains(call.prompt, "User Message: What should I look for in a laptop?") {
		t.Error("prompt must carry the user message")
	}
}
