package gateway

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/learnlab/internal/store"
)

// LoggingGateway is a decorator that records every call in the call log and
// the structured log.
type LoggingGateway struct {
	inner     Gateway
	eventRepo store.EventRepo
	log       *zap.Logger
}

var _ Gateway = (*LoggingGateway)(nil)

// WithLogging wraps a Gateway with call logging. repo may be nil when the
// call log is disabled.
func WithLogging(g Gateway, repo store.EventRepo, log *zap.Logger) Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingGateway{inner: g, eventRepo: repo, log: log}
}

func (l *LoggingGateway) CreatePlan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	var res *PlanResult
	err := l.record(ctx, OpCreatePlan, req, func(ctx context.Context) (err error) {
		res, err = l.inner.CreatePlan(ctx, req)
		return err
	})
	return res, err
}

func (l *LoggingGateway) ExplainTopic(ctx context.Context, moduleID int, topic string) (*Explanation, error) {
	var res *Explanation
	err := l.record(ctx, OpExplainTopic, explainTopicRequest{ModuleID: moduleID, Topic: topic}, func(ctx context.Context) (err error) {
		res, err = l.inner.ExplainTopic(ctx, moduleID, topic)
		return err
	})
	return res, err
}

func (l *LoggingGateway) AskDoubt(ctx context.Context, moduleID int, question string) (*Answer, error) {
	var res *Answer
	err := l.record(ctx, OpAskDoubt, askDoubtRequest{ModuleID: moduleID, Question: question}, func(ctx context.Context) (err error) {
		res, err = l.inner.AskDoubt(ctx, moduleID, question)
		return err
	})
	return res, err
}

func (l *LoggingGateway) GenerateQuiz(ctx context.Context, moduleID int, numQuestions int) (*Quiz, error) {
	var res *Quiz
	err := l.record(ctx, OpGenerateQuiz, generateQuizRequest{ModuleID: moduleID, NumQuestions: numQuestions}, func(ctx context.Context) (err error) {
		res, err = l.inner.GenerateQuiz(ctx, moduleID, numQuestions)
		return err
	})
	return res, err
}

func (l *LoggingGateway) GetTopicBrief(ctx context.Context, topic string) (Brief, error) {
	var res Brief
	err := l.record(ctx, OpGetTopicBrief, topicBriefRequest{Topic: topic}, func(ctx context.Context) (err error) {
		res, err = l.inner.GetTopicBrief(ctx, topic)
		return err
	})
	return res, err
}

func (l *LoggingGateway) Health(ctx context.Context) (string, error) {
	var res string
	err := l.record(ctx, OpHealth, nil, func(ctx context.Context) (err error) {
		res, err = l.inner.Health(ctx)
		return err
	})
	return res, err
}

func (l *LoggingGateway) record(ctx context.Context, op string, req any, call func(context.Context) error) error {
	requestID := requestIDFrom(ctx)
	ctx = WithRequestID(ctx, requestID)
	rc := &capture{}
	ctx = withCapture(ctx, rc)

	start := time.Now()
	err := call(ctx)
	latency := time.Since(start)

	fields := []zap.Field{
		zap.String("op", op),
		zap.String("request_id", requestID),
		zap.Int("status", rc.statusCode),
		zap.Duration("latency", latency),
	}
	if err != nil {
		l.log.Warn("gateway call failed", append(fields, zap.Error(err))...)
	} else {
		l.log.Info("gateway call", fields...)
	}

	if l.eventRepo == nil {
		return err
	}

	data := store.CallEventData{
		Operation:    op,
		RequestID:    requestID,
		StatusCode:   rc.statusCode,
		LatencyMs:    latency.Milliseconds(),
		Success:      err == nil,
		RequestBody:  serializeRequest(req),
		ResponseBody: string(rc.body),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// A failed log write never fails the call. Cancelled calls are still
	// recorded, so the write drops the call's cancellation.
	if logErr := l.eventRepo.AppendCall(context.WithoutCancel(ctx), data); logErr != nil {
		l.log.Warn("failed to record call event", zap.String("op", op), zap.Error(logErr))
	}
	return err
}

func serializeRequest(req any) string {
	if req == nil {
		return ""
	}
	if pr, ok := req.(PlanRequest); ok {
		req = startLearningRequest{
			Subject:     pr.Subject,
			Level:       pr.Level,
			TotalDays:   pr.TotalDays,
			LearnerName: pr.LearnerName,
		}
	}
	b, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
