package mocks

import (
	context "context"

	entity "github.com/bnema/textedit/internal/domain/entity"
	mock "github.com/stretchr/testify/mock"
)

// MockNumberObserver is a mock type for the NumberObserver type
type MockNumberObserver struct {
	mock.Mock
}

type MockNumberObserver_Expecter struct {
	mock *mock.Mock
}

func (_m *MockNumberObserver) EXPECT() *MockNumberObserver_Expecter {
	return &MockNumberObserver_Expecter{mock: &_m.Mock}
}

// OnNumberChanged provides a mock function with given fields: ctx, n
func (_m *MockNumberObserver) OnNumberChanged(ctx context.Context, n entity.NumberChanged) {
	_m.Called(ctx, n)
}

// MockNumberObserver_OnNumberChanged_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'OnNumberChanged'
type MockNumberObserver_OnNumberChanged_Call struct {
	*mock.Call
}

// OnNumberChanged is a helper method to define mock.On call
//   - ctx context.Context
//   - n entity.NumberChanged
func (_e *MockNumberObserver_Expecter) OnNumberChanged(ctx interface{}, n interface{}) *MockNumberObserver_OnNumberChanged_Call {
	return &MockNumberObserver_OnNumberChanged_Call{Call: _e.mock.On("OnNumberChanged", ctx, n)}
}

func (_c *MockNumberObserver_OnNumberChanged_Call) Run(run func(ctx context.Context, n entity.NumberChanged)) *MockNumberObserver_OnNumberChanged_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(entity.NumberChanged))
	})
	return _c
}

func (_c *MockNumberObserver_OnNumberChanged_Call) Return() *MockNumberObserver_OnNumberChanged_Call {
	_c.Call.Return()
	return _c
}

func (_c *MockNumberObserver_OnNumberChanged_Call) RunAndReturn(run func(context.Context, entity.NumberChanged)) *MockNumberObserver_OnNumberChanged_Call {
	_c.Run(run)
	return _c
}

// NewMockNumberObserver creates a new instance of MockNumberObserver. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockNumberObserver(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNumberObserver {
	mock := &MockNumberObserver{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
