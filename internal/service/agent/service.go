package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/birdiland/backend/internal/analysis/emotion"
	"github.com/birdiland/backend/internal/errx"
	"github.com/birdiland/backend/internal/model/chat"
	"github.com/birdiland/backend/internal/model/persona"
	"github.com/birdiland/backend/internal/service/session"
	logx "github.com/birdiland/backend/pkg/logger"
)

// Reply is the outcome of one non-streaming conversation turn.
type Reply struct {
	Text    string
	Emotion emotion.Label
}

// Fragment is one incremental piece of a streamed reply. Emotion is
// computed over the accumulated text so far, not the fragment alone.
// The terminal fragment carries Final=true, empty content and the
// emotion of the full reply.
type Fragment struct {
	Content string
	Emotion emotion.Label
	Final   bool
}

// Service orchestrates one conversation turn: persona resolution,
// prompt assembly, the provider call, history commit and emotion
// tagging. A per-session-key mutex is held across the whole
// read-history/call/append sequence so at most one in-flight completion
// mutates a given session.
type Service struct {
	personas persona.Store
	sessions session.Store
	chain    compose.Runnable[map[string]any, *schema.Message]
	locks    sync.Map // chat.SessionKey -> *sync.Mutex
}

// NewService wires the conversation manager. A nil chatModel leaves the
// provider disabled: every turn then resolves to a local fallback reply.
func NewService(ctx context.Context, personas persona.Store, sessions session.Store, chatModel model.ChatModel) (*Service, error) {
	svc := &Service{
		personas: personas,
		sessions: sessions,
	}

	if chatModel == nil {
		return svc, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	svc.chain = runnable
	return svc, nil
}

// Enabled reports whether a completion provider is configured.
func (s *Service) Enabled() bool {
	return s.chain != nil
}

// Converse runs one whole-response turn. Provider failures never
// propagate: they degrade to a canned fallback reply with no history
// mutation. Only an unknown persona or a session-store failure surfaces
// as an error.
func (s *Service) Converse(ctx context.Context, agentID, userID, message string) (Reply, error) {
	p, ok := s.personas.FindByID(agentID)
	if !ok {
		return Reply{}, errx.ErrPersonaNotFound
	}

	key := chat.SessionKey{AgentID: agentID, UserID: userID}
	unlock := s.lockKey(key)
	defer unlock()

	if s.chain == nil {
		return Reply{Text: fallbackReply(p.Name, message), Emotion: emotion.Neutral}, nil
	}

	history, err := s.sessions.History(ctx, key)
	if err != nil {
		return Reply{}, err
	}

	response, err := s.chain.Invoke(ctx, s.chainInput(p, history, message))
	if err != nil {
		logx.Warn().Err(err).Str("session", key.String()).Msg("provider call failed, using fallback reply")
		return Reply{Text: fallbackReply(p.Name, message), Emotion: emotion.Neutral}, nil
	}

	s.commitTurns(ctx, key, message, response.Content)

	logx.Info().Str("session", key.String()).Str("persona", p.ID).Int("length", len(response.Content)).Msg("generated reply")
	return Reply{Text: response.Content, Emotion: emotion.Classify(response.Content)}, nil
}

// ConverseStream runs one streaming turn. The returned channel yields
// fragments as they arrive and is closed after the terminal fragment.
// The user and assistant turns are committed only once the provider
// stream has fully drained; an aborted or failed stream commits nothing.
func (s *Service) ConverseStream(ctx context.Context, agentID, userID, message string) (<-chan Fragment, error) {
	p, ok := s.personas.FindByID(agentID)
	if !ok {
		return nil, errx.ErrPersonaNotFound
	}

	key := chat.SessionKey{AgentID: agentID, UserID: userID}
	out := make(chan Fragment)

	go func() {
		defer close(out)

		unlock := s.lockKey(key)
		defer unlock()

		if s.chain == nil {
			s.emit(ctx, out, Fragment{Content: fallbackReply(p.Name, message), Emotion: emotion.Neutral})
			s.emit(ctx, out, Fragment{Emotion: emotion.Neutral, Final: true})
			return
		}

		history, err := s.sessions.History(ctx, key)
		if err != nil {
			s.emit(ctx, out, Fragment{Content: streamErrorReply(err), Emotion: emotion.Neutral})
			s.emit(ctx, out, Fragment{Emotion: emotion.Neutral, Final: true})
			return
		}

		stream, err := s.chain.Stream(ctx, s.chainInput(p, history, message))
		if err != nil {
			logx.Warn().Err(err).Str("session", key.String()).Msg("provider stream failed to start")
			s.emit(ctx, out, Fragment{Content: streamErrorReply(err), Emotion: emotion.Neutral})
			s.emit(ctx, out, Fragment{Emotion: emotion.Neutral, Final: true})
			return
		}
		defer stream.Close()

		var assembled strings.Builder
		for {
			chunk, recvErr := stream.Recv()
			if errors.Is(recvErr, io.EOF) {
				break
			}
			if recvErr != nil {
				logx.Warn().Err(recvErr).Str("session", key.String()).Msg("provider stream failed mid-flight")
				s.emit(ctx, out, Fragment{Content: streamErrorReply(recvErr), Emotion: emotion.Neutral})
				s.emit(ctx, out, Fragment{Emotion: emotion.Neutral, Final: true})
				return
			}
			if chunk == nil || chunk.Content == "" {
				continue
			}

			assembled.WriteString(chunk.Content)
			if !s.emit(ctx, out, Fragment{Content: chunk.Content, Emotion: emotion.Classify(assembled.String())}) {
				// Caller abandoned the stream; stop consuming, commit nothing.
				return
			}
		}

		full := assembled.String()
		s.commitTurns(ctx, key, message, full)

		finalEmotion := emotion.Classify(full)
		s.emit(ctx, out, Fragment{Emotion: finalEmotion, Final: true})

		logx.Info().Str("session", key.String()).Str("persona", p.ID).Int("length", len(full)).Msg("completed streamed reply")
	}()

	return out, nil
}

// ClearHistory removes the session log for the given pair.
func (s *Service) ClearHistory(ctx context.Context, agentID, userID string) error {
	if _, ok := s.personas.FindByID(agentID); !ok {
		return errx.ErrPersonaNotFound
	}

	key := chat.SessionKey{AgentID: agentID, UserID: userID}
	unlock := s.lockKey(key)
	defer unlock()

	return s.sessions.Clear(ctx, key)
}

// chainInput assembles the provider message parameters: one system
// message, the full current history oldest first, one new user message.
func (s *Service) chainInput(p persona.Persona, history []chat.Turn, message string) map[string]any {
	return map[string]any{
		"system":  buildSystemPrompt(p),
		"history": historyMessages(history),
		"query":   message,
	}
}

func historyMessages(turns []chat.Turn) []*schema.Message {
	if len(turns) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(turn.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(turn.Content, nil))
		}
	}
	return history
}

// commitTurns appends the user and assistant turns, in that order.
// Append failures are logged but do not fail the turn that already
// produced a reply.
func (s *Service) commitTurns(ctx context.Context, key chat.SessionKey, userText, assistantText string) {
	if _, err := s.sessions.Append(ctx, key, chat.NewTurn(chat.RoleUser, userText)); err != nil {
		logx.Error().Err(err).Str("session", key.String()).Msg("failed to save user turn")
		return
	}
	if _, err := s.sessions.Append(ctx, key, chat.NewTurn(chat.RoleAssistant, assistantText)); err != nil {
		logx.Error().Err(err).Str("session", key.String()).Msg("failed to save assistant turn")
	}
}

// emit sends a fragment unless the caller's context is gone. Reports
// whether the fragment was delivered. A context that is already
// cancelled wins over a ready receiver.
func (s *Service) emit(ctx context.Context, out chan<- Fragment, f Fragment) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}

	select {
	case out <- f:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Service) lockKey(key chat.SessionKey) func() {
	v, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
