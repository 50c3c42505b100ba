package emotion

import "strings"

// Label 表示回复的情绪标签。
type Label string

const (
	Neutral Label = "neutral"
	Happy   Label = "happy"
	Sad     Label = "sad"
)

var positiveWords = []string{
	"开心", "高兴", "愉快", "兴奋", "喜欢", "爱", "美好", "很棒", "太好了",
}

var negativeWords = []string{
	"难过", "伤心", "失望", "生气", "讨厌", "糟糕", "不好", "遗憾",
}

var neutralWords = []string{
	"知道", "了解", "明白", "理解", "思考", "考虑",
}

// Classify assigns an emotion label to the given text by keyword
// counting. The label with the strictly highest count wins; ties and
// an all-zero count resolve to Neutral. Deterministic by construction.
func Classify(text string) Label {
	normalized := strings.ToLower(text)

	positive := countHits(normalized, positiveWords)
	negative := countHits(normalized, negativeWords)
	neutral := countHits(normalized, neutralWords)

	switch {
	case positive > negative && positive > neutral:
		return Happy
	case negative > positive && negative > neutral:
		return Sad
	default:
		return Neutral
	}
}

func countHits(text string, words []string) int {
	count := 0
	for _, word := range words {
		if strings.Contains(text, word) {
			count++
		}
	}
	return count
}
