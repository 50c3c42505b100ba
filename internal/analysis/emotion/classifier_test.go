package emotion_test

import (
	"testing"

	"github.com/birdiland/backend/internal/analysis/emotion"
)

func TestClassifyHappy(t *testing.T) {
	if got := emotion.Classify("今天天气真好，我很开心！"); got != emotion.Happy {
		t.Fatalf("expected happy, got %s", got)
	}
}

func TestClassifySad(t *testing.T) {
	if got := emotion.Classify("听到这个消息我很难过"); got != emotion.Sad {
		t.Fatalf("expected sad, got %s", got)
	}
}

func TestClassifyNeutral(t *testing.T) {
	if got := emotion.Classify("我知道了，我会考虑的"); got != emotion.Neutral {
		t.Fatalf("expected neutral, got %s", got)
	}
}

func TestClassifyEmptyText(t *testing.T) {
	if got := emotion.Classify(""); got != emotion.Neutral {
		t.Fatalf("expected neutral for empty text, got %s", got)
	}
}

func TestClassifyTieResolvesNeutral(t *testing.T) {
	// One positive and one negative keyword, no neutral indicators.
	if got := emotion.Classify("我很开心也很难过"); got != emotion.Neutral {
		t.Fatalf("expected neutral on tie, got %s", got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	text := "真是美好的一天，太好了，我很喜欢"
	first := emotion.Classify(text)
	for i := 0; i < 10; i++ {
		if got := emotion.Classify(text); got != first {
			t.Fatalf("classification not deterministic: %s vs %s", first, got)
		}
	}
}
