package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	handlermocks "github.com/joshuarp/msgcontext-gateway/internal/mock/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/joshuarp/msgcontext-gateway/internal/domain"
	"github.com/joshuarp/msgcontext-gateway/internal/domain/vo"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func performJSONRequest(app *fiber.App, method, path string, body []byte, headers map[string]string) (*http.Response, map[string]interface{}, []byte) {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if len(body) > 0 {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req)
	if err != nil {
		return nil, nil, nil
	}

	defer resp.Body.Close()
	rawBody, _ := io.ReadAll(resp.Body)
	parsed := map[string]interface{}{}
	_ = json.Unmarshal(rawBody, &parsed)

	return resp, parsed, rawBody
}

type InboundMessageHandlerSuite struct {
	suite.Suite

	service *handlermocks.InboundMessageProcessor
	handler *InboundMessageHandler
	app     *fiber.App
}

func (s *InboundMessageHandlerSuite) SetupTest() {
	s.service = handlermocks.NewInboundMessageProcessor(s.T())
	s.handler = NewInboundMessageHandler(s.service, newTestLogger())
	s.app = fiber.New()
	s.handler.Register(s.app)
}

func (s *InboundMessageHandlerSuite) TestHandle_TableDriven() {
	validBody := []byte(`{"platform":"wechat","to_user":"gh_account","from_user":"openid-1","msg_id":7,"create_time":1700000000,"msg_type":"text","content":"hi"}`)

	tests := []struct {
		name      string
		body      []byte
		setupMock func()
		assertion func(*http.Response, map[string]interface{}, []byte)
	}{
		{
			name: "invalid body",
			body: []byte(`{"platform":`),
			assertion: func(resp *http.Response, payload map[string]interface{}, _ []byte) {
				require.NotNil(s.T(), resp)
				assert.Equal(s.T(), fiber.StatusBadRequest, resp.StatusCode)
				assert.Equal(s.T(), "invalid request body", payload["error"])
			},
		},
		{
			name: "invalid message",
			body: validBody,
			setupMock: func() {
				s.service.EXPECT().
					Process(mock.Anything, mock.Anything).
					Return(vo.ProcessOutcome{Stage: vo.StageFailed}, fmt.Errorf("%w: platform is required", vo.ErrInvalidMessage))
			},
			assertion: func(resp *http.Response, payload map[string]interface{}, _ []byte) {
				require.NotNil(s.T(), resp)
				assert.Equal(s.T(), fiber.StatusBadRequest, resp.StatusCode)
				assert.Contains(s.T(), payload["error"], "platform is required")
			},
		},
		{
			name: "dedup unavailable asks for redelivery",
			body: validBody,
			setupMock: func() {
				s.service.EXPECT().
					Process(mock.Anything, mock.Anything).
					Return(vo.ProcessOutcome{Stage: vo.StageFailed}, fmt.Errorf("service: %w: lock timeout", vo.ErrDedupUnavailable))
			},
			assertion: func(resp *http.Response, payload map[string]interface{}, _ []byte) {
				require.NotNil(s.T(), resp)
				assert.Equal(s.T(), fiber.StatusServiceUnavailable, resp.StatusCode)
				assert.Equal(s.T(), "deduplication unavailable, retry later", payload["error"])
			},
		},
		{
			name: "unexpected error",
			body: validBody,
			setupMock: func() {
				s.service.EXPECT().
					Process(mock.Anything, mock.Anything).
					Return(vo.ProcessOutcome{Stage: vo.StageFailed}, fmt.Errorf("insert failed"))
			},
			assertion: func(resp *http.Response, payload map[string]interface{}, _ []byte) {
				require.NotNil(s.T(), resp)
				assert.Equal(s.T(), fiber.StatusInternalServerError, resp.StatusCode)
				assert.Equal(s.T(), "internal server error", payload["error"])
			},
		},
		{
			name: "rejected repeat acknowledged",
			body: validBody,
			setupMock: func() {
				s.service.EXPECT().
					Process(mock.Anything, mock.Anything).
					Return(vo.ProcessOutcome{Stage: vo.StageRejected, Repeated: true}, nil)
			},
			assertion: func(resp *http.Response, _ map[string]interface{}, raw []byte) {
				require.NotNil(s.T(), resp)
				assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
				assert.Equal(s.T(), AckBody, string(raw))
			},
		},
		{
			name: "completed message",
			body: validBody,
			setupMock: func() {
				s.service.EXPECT().
					Process(mock.Anything, mock.MatchedBy(func(msg domain.InboundMessage) bool {
						return msg.Platform == "wechat" &&
							msg.Recipient == "gh_account" &&
							msg.Sender == "openid-1" &&
							msg.MsgID == 7 &&
							msg.CreateTime.Equal(time.Unix(1700000000, 0)) &&
							msg.MsgType == "text" &&
							msg.Content == "hi"
					})).
					Return(vo.ProcessOutcome{
						Stage:           vo.StageCompleted,
						ConversationKey: "conversation:abc",
						Recorded:        true,
						Stored:          true,
					}, nil)
			},
			assertion: func(resp *http.Response, payload map[string]interface{}, _ []byte) {
				require.NotNil(s.T(), resp)
				assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
				assert.Equal(s.T(), "completed", payload["stage"])
				assert.Equal(s.T(), "conversation:abc", payload["conversation_key"])
				assert.Equal(s.T(), true, payload["recorded"])
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()
			if tc.setupMock != nil {
				tc.setupMock()
			}

			resp, payload, raw := performJSONRequest(s.app, http.MethodPost, "/messages", tc.body, nil)
			tc.assertion(resp, payload, raw)
		})
	}
}

func TestInboundMessageHandlerSuite(t *testing.T) {
	suite.Run(t, new(InboundMessageHandlerSuite))
}

type ConversationContextHandlerSuite struct {
	suite.Suite

	service *handlermocks.ConversationContextReader
	handler *ConversationContextHandler
	app     *fiber.App
}

func (s *ConversationContextHandlerSuite) SetupTest() {
	s.service = handlermocks.NewConversationContextReader(s.T())
	s.handler = NewConversationContextHandler(s.service, newTestLogger())
	s.app = fiber.New()
	s.handler.Register(s.app)
}

func (s *ConversationContextHandlerSuite) TestHandle_TableDriven() {
	const path = "/conversations/context?platform=wechat&to_user=gh&from_user=openid&context_type=default"

	tests := []struct {
		name         string
		serviceErr   error
		result       vo.ConversationContext
		expectStatus int
		assertion    func(map[string]interface{})
	}{
		{
			name:         "unresolvable conversation",
			serviceErr:   vo.ErrConversationUnresolvable,
			expectStatus: fiber.StatusBadRequest,
		},
		{
			name:         "context disabled",
			serviceErr:   vo.ErrContextDisabled,
			expectStatus: fiber.StatusNotFound,
		},
		{
			name:         "backend unavailable",
			serviceErr:   fmt.Errorf("service: %w: redis down", vo.ErrDedupUnavailable),
			expectStatus: fiber.StatusServiceUnavailable,
		},
		{
			name:         "unexpected error",
			serviceErr:   fmt.Errorf("boom"),
			expectStatus: fiber.StatusInternalServerError,
		},
		{
			name: "success",
			result: vo.ConversationContext{
				ConversationKey: "conversation:abc",
				MaxRecordCount:  20,
				Records:         []vo.ConversationRecord{{MsgID: 7, MsgType: "text", Sender: "openid"}},
			},
			expectStatus: fiber.StatusOK,
			assertion: func(payload map[string]interface{}) {
				assert.Equal(s.T(), "conversation:abc", payload["conversation_key"])
				assert.Equal(s.T(), float64(20), payload["max_record_count"])
				records, ok := payload["records"].([]interface{})
				require.True(s.T(), ok)
				assert.Len(s.T(), records, 1)
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.service.EXPECT().
				GetConversationContext(mock.Anything, "wechat", "gh", "openid", "default").
				Return(tc.result, tc.serviceErr)

			resp, payload, _ := performJSONRequest(s.app, http.MethodGet, path, nil, nil)
			require.NotNil(s.T(), resp)
			assert.Equal(s.T(), tc.expectStatus, resp.StatusCode)
			if tc.assertion != nil {
				tc.assertion(payload)
			}
		})
	}
}

func TestConversationContextHandlerSuite(t *testing.T) {
	suite.Run(t, new(ConversationContextHandlerSuite))
}
