package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://127.0.0.1:8000"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// ClientConfig configures the HTTP gateway client.
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration // 0 means no client-side timeout
	UserAgent string
}

// Client implements Gateway over the backend's JSON HTTP API.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

var _ Gateway = (*Client)(nil)

// NewClient creates a Client for cfg.
func NewClient(cfg ClientConfig) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "learnlab"
	}
	return &Client{
		baseURL:   base,
		userAgent: ua,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

// BaseURL returns the backend address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type startLearningRequest struct {
	Subject     string `json:"subject"`
	Level       string `json:"level"`
	TotalDays   int    `json:"total_days"`
	LearnerName string `json:"learner_name"`
}

type startLearningResponse struct {
	Summary   PlanSummary `json:"summary"`
	StudyPlan StudyPlan   `json:"study_plan"`
}

func (c *Client) CreatePlan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	req, err := normalizePlanRequest(req)
	if err != nil {
		return nil, err
	}

	var resp startLearningResponse
	body := startLearningRequest{
		Subject:     req.Subject,
		Level:       req.Level,
		TotalDays:   req.TotalDays,
		LearnerName: req.LearnerName,
	}
	if err := c.post(ctx, OpCreatePlan, "/start-learning", body, planResponseSchema, &resp); err != nil {
		return nil, err
	}
	if err := ValidatePlan(&resp.StudyPlan); err != nil {
		return nil, &TransportError{Op: OpCreatePlan, Err: err}
	}

	plan := resp.StudyPlan
	return &PlanResult{Plan: &plan, Summary: resp.Summary}, nil
}

type explainTopicRequest struct {
	ModuleID int    `json:"module_id"`
	Topic    string `json:"topic"`
}

func (c *Client) ExplainTopic(ctx context.Context, moduleID int, topic string) (*Explanation, error) {
	topic, err := RequireText("topic", topic)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Explanation Explanation `json:"explanation"`
	}
	body := explainTopicRequest{ModuleID: moduleID, Topic: topic}
	if err := c.post(ctx, OpExplainTopic, "/explain-topic", body, explanationResponseSchema, &resp); err != nil {
		return nil, err
	}
	if resp.Explanation.Topic == "" {
		resp.Explanation.Topic = topic
	}
	return &resp.Explanation, nil
}

type askDoubtRequest struct {
	ModuleID int    `json:"module_id"`
	Question string `json:"question"`
}

func (c *Client) AskDoubt(ctx context.Context, moduleID int, question string) (*Answer, error) {
	question, err := RequireText("question", question)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Response Answer `json:"response"`
	}
	body := askDoubtRequest{ModuleID: moduleID, Question: question}
	if err := c.post(ctx, OpAskDoubt, "/ask-doubt", body, doubtResponseSchema, &resp); err != nil {
		return nil, err
	}
	return &resp.Response, nil
}

type generateQuizRequest struct {
	ModuleID     int `json:"module_id"`
	NumQuestions int `json:"num_questions"`
}

func (c *Client) GenerateQuiz(ctx context.Context, moduleID int, numQuestions int) (*Quiz, error) {
	if numQuestions <= 0 {
		numQuestions = DefaultNumQuestions
	}

	var resp struct {
		Quiz Quiz `json:"quiz"`
	}
	body := generateQuizRequest{ModuleID: moduleID, NumQuestions: numQuestions}
	if err := c.post(ctx, OpGenerateQuiz, "/generate-quiz", body, quizResponseSchema, &resp); err != nil {
		return nil, err
	}
	if err := ValidateQuiz(&resp.Quiz); err != nil {
		return nil, &TransportError{Op: OpGenerateQuiz, Err: err}
	}
	return &resp.Quiz, nil
}

type topicBriefRequest struct {
	Topic string `json:"topic"`
}

func (c *Client) GetTopicBrief(ctx context.Context, topic string) (Brief, error) {
	topic, err := RequireText("topic", topic)
	if err != nil {
		return "", err
	}

	var resp struct {
		Brief string `json:"brief"`
	}
	if err := c.post(ctx, OpGetTopicBrief, "/get-topic-brief", topicBriefRequest{Topic: topic}, briefResponseSchema, &resp); err != nil {
		return "", err
	}
	return Brief(resp.Brief), nil
}

func (c *Client) Health(ctx context.Context) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, OpHealth, http.MethodGet, "/", nil, healthResponseSchema, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) post(ctx context.Context, op, path string, body any, schema *Schema, out any) error {
	return c.do(ctx, op, http.MethodPost, path, body, schema, out)
}

// do performs one exchange. Every failure is reported as a *TransportError.
func (c *Client) do(ctx context.Context, op, method, path string, body any, schema *Schema, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestIDFrom(ctx))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	recordResponse(ctx, resp.StatusCode, raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(raw),
		}
	}

	if err := validateBody(schema, raw); err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorDetail extracts the service's error detail. FastAPI sends either a
// string or a list of validation issues.
func errorDetail(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	var issues []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &issues); err == nil {
		msgs := make([]string, 0, len(issues))
		for _, is := range issues {
			if is.Msg != "" {
				msgs = append(msgs, is.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return string(body.Detail)
}

// NewRequestID returns a fresh request identifier.
func NewRequestID() string {
	return uuid.NewString()
}
