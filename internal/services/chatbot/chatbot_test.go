package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/suite"

	"github.com/Jeet1511/EliteZero/internal/dependencies/mocks"
	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/testutil"
)

type fakeResponder struct {
	reply   string
	err     error
	history []Message
}

func (f *fakeResponder) Respond(_ context.Context, history []Message) (string, error) {
	f.history = history
	return f.reply, f.err
}

type BotSuite struct {
	suite.Suite
	ctx       context.Context
	clock     *mocks.MockClock
	random    *mocks.MockRandom
	responder *fakeResponder
	bot       *Bot
}

func TestBotSuite(t *testing.T) {
	suite.Run(t, new(BotSuite))
}

func (s *BotSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.responder = &fakeResponder{reply: "ai says hi"}
	s.bot = NewBot(s.clock, s.random, s.responder, testutil.NopLogger())
}

func (s *BotSuite) reply(user model.PlayerID, text string) string {
	out, err := s.bot.Reply(s.ctx, user, text)
	s.Require().NoError(err)
	return out
}

func (s *BotSuite) TestPatternReplies() {
	cases := []struct {
		message string
		group   string
	}{
		{"hello there", "greeting"},
		{"how are you", "how-are-you"},
		{"can you help me", "help"},
		{"thanks a lot", "thanks"},
		{"ok bye", "bye"},
		{"who are you", "who-are-you"},
		{"tell me a joke", "joke"},
		{"you are awesome", "compliment"},
		{"quantum entanglement", "default"},
	}
	for _, tc := range cases {
		group, _ := match(tc.message)
		s.Equal(tc.group, group, tc.message)
	}
}

func (s *BotSuite) TestReplyPicksRandomResponse() {
	s.random.QueueIntn(1)
	s.Equal(groups[0].responses[1], s.reply("u1", "Hey!"))
	s.Equal(defaultResponses[0], s.reply("u1", "quantum entanglement"))
}

func (s *BotSuite) TestContextKeepsLastMessages() {
	for i := 0; i < 6; i++ {
		s.reply("u1", "message")
	}
	history := s.bot.History("u1")
	s.Len(history, ContextSize)
	s.True(history[len(history)-1].FromBot)
	s.False(history[len(history)-2].FromBot)
	s.Nil(s.bot.History("u2"))
}

func (s *BotSuite) TestReplyRejectsEmptyUser() {
	_, err := s.bot.Reply(s.ctx, "", "hello")
	s.ErrorIs(err, model.ErrInvalidAction)
}

func (s *BotSuite) TestClearOldContexts() {
	s.reply("u1", "hello")
	s.clock.Advance(30 * time.Minute)
	s.reply("u2", "hello")
	s.clock.Advance(31 * time.Minute)

	s.Equal(1, s.bot.ClearOldContexts(s.ctx))
	s.Nil(s.bot.History("u1"))
	s.NotEmpty(s.bot.History("u2"))
	s.Equal(0, s.bot.ClearOldContexts(s.ctx))
}

func (s *BotSuite) TestAIMode() {
	already, err := s.bot.EnableAI("u1")
	s.Require().NoError(err)
	s.False(already)
	already, err = s.bot.EnableAI("u1")
	s.Require().NoError(err)
	s.True(already)
	s.True(s.bot.InAIMode("u1"))

	s.Equal("ai says hi", s.reply("u1", "what is the capital of France?"))
	s.Require().Len(s.responder.history, 1)
	s.Equal("what is the capital of France?", s.responder.history[0].Content)

	s.Require().NoError(s.bot.DisableAI("u1"))
	s.False(s.bot.InAIMode("u1"))
	s.ErrorIs(s.bot.DisableAI("u1"), model.ErrAINotActive)
}

func (s *BotSuite) TestAIFailureFallsBackToPatterns() {
	s.responder.err = errors.New("rate limited")
	_, err := s.bot.EnableAI("u1")
	s.Require().NoError(err)
	s.Contains(groups[4].responses, s.reply("u1", "bye"))
}

func (s *BotSuite) TestAIUnavailableWithoutResponder() {
	bot := NewBot(s.clock, s.random, nil, testutil.NopLogger())
	_, err := bot.EnableAI("u1")
	s.ErrorIs(err, model.ErrAIUnavailable)
}

func (s *BotSuite) TestExpireAI() {
	_, err := s.bot.EnableAI("u1")
	s.Require().NoError(err)
	_, err = s.bot.EnableAI("u2")
	s.Require().NoError(err)

	s.clock.Advance(20 * time.Minute)
	s.reply("u2", "still here")
	s.clock.Advance(11 * time.Minute)

	s.Equal(1, s.bot.ExpireAI(s.ctx))
	s.False(s.bot.InAIMode("u1"))
	s.True(s.bot.InAIMode("u2"))
}

func (s *BotSuite) TestOpenAIResponder() {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.True(strings.HasSuffix(r.URL.Path, "/chat/completions"))
		s.Equal("Bearer sk-test", r.Header.Get("Authorization"))
		s.NoError(json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Paris."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	responder := NewOpenAIResponder(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1", MaxTokens: 50})
	reply, err := responder.Respond(s.ctx, []Message{
		{Content: "hi"},
		{Content: "hello!", FromBot: true},
		{Content: "capital of France?"},
	})
	s.Require().NoError(err)
	s.Equal("Paris.", reply)

	s.Equal(openai.GPT4oMini, got.Model)
	s.Equal(50, got.MaxTokens)
	s.Require().Len(got.Messages, 4)
	s.Equal(openai.ChatMessageRoleSystem, got.Messages[0].Role)
	s.Equal(openai.ChatMessageRoleAssistant, got.Messages[2].Role)
	s.Equal("capital of France?", got.Messages[3].Content)
}

func (s *BotSuite) TestOpenAIResponderEmptyChoices() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	responder := NewOpenAIResponder(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	_, err := responder.Respond(s.ctx, []Message{{Content: "hi"}})
	s.Error(err)
}
