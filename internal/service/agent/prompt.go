package agent

import (
	"fmt"
	"strings"

	"github.com/birdiland/backend/internal/model/persona"
)

// buildSystemPrompt renders the fixed persona template used as the
// single system message of every provider call.
func buildSystemPrompt(p persona.Persona) string {
	return fmt.Sprintf(`你是%s，一个AI驱动的数字人。

性格特点：%s
兴趣爱好：%s
说话风格：%s
背景：%s

请以自然、友好的方式与用户对话，展现你的个性和特点。
保持对话的连贯性和一致性，记住之前的对话内容。
如果用户询问你的个人信息，可以适当分享。
用中文进行对话，保持温暖和积极的态度。`,
		p.Name,
		p.Personality,
		strings.Join(p.Interests, "、"),
		p.SpeakingStyle,
		p.Background,
	)
}
