package chat

import (
	"context"

	"fxbot/internal/domain"
	"fxbot/internal/rate"

	"github.com/stretchr/testify/mock"
)

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) SendMessage(ctx context.Context, msg domain.OutboundMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockNotificationRecorder struct{ mock.Mock }

func (m *MockNotificationRecorder) RecordNotification(err error) {
	m.Called(err)
}

type MockAnswerer struct{ mock.Mock }

func (m *MockAnswerer) Answer(ctx context.Context, text string) (rate.Reply, error) {
	args := m.Called(ctx, text)
	reply, _ := args.Get(0).(rate.Reply)
	return reply, args.Error(1)
}

type MockAuthorizer struct{ mock.Mock }

func (m *MockAuthorizer) Allow(ctx context.Context, correspondentID string) (bool, error) {
	args := m.Called(ctx, correspondentID)
	return args.Bool(0), args.Error(1)
}

type MockSubmitter struct{ mock.Mock }

func (m *MockSubmitter) Submit(msg domain.OutboundMessage) bool {
	args := m.Called(msg)
	return args.Bool(0)
}

type MockMessageRecorder struct{ mock.Mock }

func (m *MockMessageRecorder) RecordMessage(outcome string) {
	m.Called(outcome)
}
