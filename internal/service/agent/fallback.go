package agent

import (
	"fmt"
	"math/rand"
)

// fallbackReply builds the locally generated response used whenever the
// completion provider is unavailable. The user's message is echoed
// verbatim in one of several canned phrasings; the session log is never
// touched on this path.
func fallbackReply(name, message string) string {
	phrasings := []string{
		fmt.Sprintf("你好！我是%s。你说了：%s", name, message),
		fmt.Sprintf("很高兴和你聊天！你刚才说：%s", message),
		fmt.Sprintf("我注意到你说：%s。虽然目前AI服务暂时不可用，但我还是很乐意和你交流！", message),
	}
	return phrasings[rand.Intn(len(phrasings))]
}

// streamErrorReply is the single error-describing fragment yielded when
// a streaming provider call fails.
func streamErrorReply(err error) string {
	return fmt.Sprintf("抱歉，我在处理你的消息时遇到了问题：%v", err)
}
