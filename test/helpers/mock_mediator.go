package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/andrescamacho/parking-garage/internal/application/mediator"
)

// MockMediator is a test double for the Mediator interface. It answers every
// request with the configured send function and logs the request types.
type MockMediator struct {
	mu       sync.Mutex
	sendFunc func(ctx context.Context, request mediator.Request) (mediator.Response, error)
	callLog  []string
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{
		callLog: []string{},
	}
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	m.mu.Lock()
	m.callLog = append(m.callLog, fmt.Sprintf("%T", request))
	sendFunc := m.sendFunc
	m.mu.Unlock()

	if sendFunc == nil {
		return nil, fmt.Errorf("unsupported request type: %T", request)
	}
	return sendFunc(ctx, request)
}

// Register implements the Mediator interface; handlers are ignored
func (m *MockMediator) Register(requestType reflect.Type, handler mediator.RequestHandler) error {
	return nil
}

// RegisterMiddleware implements the Mediator interface; middleware is ignored
func (m *MockMediator) RegisterMiddleware(middleware mediator.Middleware) {}

// SetSendFunc sets a custom function for Send calls
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request mediator.Request) (mediator.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// FailWith makes every Send return err
func (m *MockMediator) FailWith(err error) {
	m.SetSendFunc(func(context.Context, mediator.Request) (mediator.Response, error) {
		return nil, err
	})
}

// GetCallLog returns the request types sent so far
func (m *MockMediator) GetCallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.callLog...)
}
