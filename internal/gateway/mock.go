package gateway

import (
	"context"
	"sync"
)

// MockResult is a canned result for one MockGateway call. Value must hold the
// type the operation returns (*PlanResult, *Explanation, *Answer, *Quiz,
// Brief or string).
type MockResult struct {
	Value any
	Err   error
}

// MockCall records one call made against a MockGateway.
type MockCall struct {
	Op       string
	ModuleID int
	Text     string
	Count    int
	Plan     PlanRequest
}

// MockGateway is a deterministic Gateway for tests. It returns canned results
// per operation in FIFO order and records all calls. Input validation matches
// the HTTP client.
type MockGateway struct {
	mu      sync.Mutex
	results map[string][]MockResult
	Calls   []MockCall
}

var _ Gateway = (*MockGateway)(nil)

// NewMockGateway creates an empty MockGateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{results: make(map[string][]MockResult)}
}

// Push queues a result for op.
func (m *MockGateway) Push(op string, r MockResult) *MockGateway {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[op] = append(m.results[op], r)
	return m
}

// CallCount returns the number of calls made for op.
func (m *MockGateway) CallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (m *MockGateway) next(call MockCall) MockResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
	q := m.results[call.Op]
	if len(q) == 0 {
		return MockResult{Err: &TransportError{Op: call.Op, StatusCode: 503, Detail: "no canned response"}}
	}
	m.results[call.Op] = q[1:]
	return q[0]
}

func (m *MockGateway) CreatePlan(_ context.Context, req PlanRequest) (*PlanResult, error) {
	req, err := normalizePlanRequest(req)
	if err != nil {
		return nil, err
	}
	r := m.next(MockCall{Op: OpCreatePlan, Plan: req})
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Value.(*PlanResult), nil
}

func (m *MockGateway) ExplainTopic(_ context.Context, moduleID int, topic string) (*Explanation, error) {
	topic, err := RequireText("topic", topic)
	if err != nil {
		return nil, err
	}
	r := m.next(MockCall{Op: OpExplainTopic, ModuleID: moduleID, Text: topic})
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Value.(*Explanation), nil
}

func (m *MockGateway) AskDoubt(_ context.Context, moduleID int, question string) (*Answer, error) {
	question, err := RequireText("question", question)
	if err != nil {
		return nil, err
	}
	r := m.next(MockCall{Op: OpAskDoubt, ModuleID: moduleID, Text: question})
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Value.(*Answer), nil
}

func (m *MockGateway) GenerateQuiz(_ context.Context, moduleID int, numQuestions int) (*Quiz, error) {
	if numQuestions <= 0 {
		numQuestions = DefaultNumQuestions
	}
	r := m.next(MockCall{Op: OpGenerateQuiz, ModuleID: moduleID, Count: numQuestions})
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Value.(*Quiz), nil
}

func (m *MockGateway) GetTopicBrief(_ context.Context, topic string) (Brief, error) {
	topic, err := RequireText("topic", topic)
	if err != nil {
		return "", err
	}
	r := m.next(MockCall{Op: OpGetTopicBrief, Text: topic})
	if r.Err != nil {
		return "", r.Err
	}
	return r.Value.(Brief), nil
}

func (m *MockGateway) Health(_ context.Context) (string, error) {
	r := m.next(MockCall{Op: OpHealth})
	if r.Err != nil {
		return "", r.Err
	}
	return r.Value.(string), nil
}
