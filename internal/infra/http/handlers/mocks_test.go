package handlers

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
	"github.com/automatedtaxcredits/intake-api/internal/usecase"
)

type MockLeadGateway struct {
	mock.Mock
}

func (m *MockLeadGateway) InsertDeal(ctx context.Context, fields entity.DealFields) ([]byte, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockLeadGateway) UpdateDeal(ctx context.Context, id string, fields entity.DealFields) ([]byte, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockLeadGateway) GetDeal(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockPhoneVerifier struct {
	mock.Mock
}

func (m *MockPhoneVerifier) RequestCode(ctx context.Context, in usecase.RequestAuthCodeRequest) (*usecase.MessageOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MessageOutput), args.Error(1)
}

func (m *MockPhoneVerifier) VerifyCode(ctx context.Context, in usecase.VerifyAuthCodeRequest) (*usecase.MessageOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MessageOutput), args.Error(1)
}

type MockEmailVerifier struct {
	mock.Mock
}

func (m *MockEmailVerifier) RequestVerification(ctx context.Context, in usecase.EmailRequest) (*usecase.MessageOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MessageOutput), args.Error(1)
}

func (m *MockEmailVerifier) Confirm(ctx context.Context, token string) (*usecase.MessageOutput, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MessageOutput), args.Error(1)
}

func (m *MockEmailVerifier) Status(ctx context.Context, in usecase.EmailRequest) (*usecase.EmailStatusOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.EmailStatusOutput), args.Error(1)
}

type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) OnWebhookEvent(ctx context.Context, ev usecase.WebhookEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *MockProgressService) Save(ctx context.Context, in usecase.SaveProgressRequest) (*usecase.MessageOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MessageOutput), args.Error(1)
}

func (m *MockProgressService) Load(ctx context.Context, email string) (*entity.Progress, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Progress), args.Error(1)
}

type MockFormSubmitter struct {
	mock.Mock
}

func (m *MockFormSubmitter) Execute(ctx context.Context, in usecase.SaveToXanoRequest) (json.RawMessage, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeConn struct{ closed bool }

func (f fakeConn) IsClosed() bool { return f.closed }
