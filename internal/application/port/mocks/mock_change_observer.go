package mocks

import (
	context "context"

	entity "github.com/bnema/textedit/internal/domain/entity"
	mock "github.com/stretchr/testify/mock"
)

// MockChangeObserver is a mock type for the ChangeObserver type
type MockChangeObserver struct {
	mock.Mock
}

type MockChangeObserver_Expecter struct {
	mock *mock.Mock
}

func (_m *MockChangeObserver) EXPECT() *MockChangeObserver_Expecter {
	return &MockChangeObserver_Expecter{mock: &_m.Mock}
}

// OnTextChanged provides a mock function with given fields: ctx, n
func (_m *MockChangeObserver) OnTextChanged(ctx context.Context, n entity.ChangeNotification) {
	_m.Called(ctx, n)
}

// MockChangeObserver_OnTextChanged_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'OnTextChanged'
type MockChangeObserver_OnTextChanged_Call struct {
	*mock.Call
}

// OnTextChanged is a helper method to define mock.On call
//   - ctx context.Context
//   - n entity.ChangeNotification
func (_e *MockChangeObserver_Expecter) OnTextChanged(ctx interface{}, n interface{}) *MockChangeObserver_OnTextChanged_Call {
	return &MockChangeObserver_OnTextChanged_Call{Call: _e.mock.On("OnTextChanged", ctx, n)}
}

func (_c *MockChangeObserver_OnTextChanged_Call) Run(run func(ctx context.Context, n entity.ChangeNotification)) *MockChangeObserver_OnTextChanged_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(entity.ChangeNotification))
	})
	return _c
}

func (_c *MockChangeObserver_OnTextChanged_Call) Return() *MockChangeObserver_OnTextChanged_Call {
	_c.Call.Return()
	return _c
}

func (_c *MockChangeObserver_OnTextChanged_Call) RunAndReturn(run func(context.Context, entity.ChangeNotification)) *MockChangeObserver_OnTextChanged_Call {
	_c.Run(run)
	return _c
}

// NewMockChangeObserver creates a new instance of MockChangeObserver. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockChangeObserver(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockChangeObserver {
	mock := &MockChangeObserver{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
