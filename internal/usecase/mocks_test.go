package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

type MockLeadGateway struct {
	mock.Mock
}

func (m *MockLeadGateway) InsertDeal(ctx context.Context, fields entity.DealFields) ([]byte, error) {
	args := m.Called(ctx, fields)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *MockLeadGateway) UpdateDeal(ctx context.Context, id string, fields entity.DealFields) ([]byte, error) {
	args := m.Called(ctx, id, fields)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *MockLeadGateway) GetDeal(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLeadEvent(ctx context.Context, ev entity.LeadEvent) error {
	return m.Called(ctx, ev).Error(0)
}

type MockPhoneStore struct {
	mock.Mock
}

func (m *MockPhoneStore) FindPhone(ctx context.Context, phone string) (*entity.PhoneVerification, error) {
	args := m.Called(ctx, phone)
	v, _ := args.Get(0).(*entity.PhoneVerification)
	return v, args.Error(1)
}

func (m *MockPhoneStore) CreatePhone(ctx context.Context, v *entity.PhoneVerification) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockPhoneStore) UpdatePhone(ctx context.Context, v *entity.PhoneVerification) error {
	return m.Called(ctx, v).Error(0)
}

type MockEmailStore struct {
	mock.Mock
}

func (m *MockEmailStore) FindEmail(ctx context.Context, email string) (*entity.EmailVerification, error) {
	args := m.Called(ctx, email)
	v, _ := args.Get(0).(*entity.EmailVerification)
	return v, args.Error(1)
}

func (m *MockEmailStore) CreateEmail(ctx context.Context, v *entity.EmailVerification) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockEmailStore) UpdateEmail(ctx context.Context, v *entity.EmailVerification) error {
	return m.Called(ctx, v).Error(0)
}

type MockProgressStore struct {
	mock.Mock
}

func (m *MockProgressStore) FindProgress(ctx context.Context, email string) (*entity.Progress, error) {
	args := m.Called(ctx, email)
	p, _ := args.Get(0).(*entity.Progress)
	return p, args.Error(1)
}

func (m *MockProgressStore) CreateProgress(ctx context.Context, p *entity.Progress) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProgressStore) UpdateProgress(ctx context.Context, p *entity.Progress) error {
	return m.Called(ctx, p).Error(0)
}

type MockSMS struct {
	mock.Mock
}

func (m *MockSMS) SendSMS(ctx context.Context, to, body string) error {
	return m.Called(ctx, to, body).Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationEmail(ctx context.Context, to, link string) error {
	return m.Called(ctx, to, link).Error(0)
}

func (m *MockMailer) SendReport(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Issue(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *MockTokens) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

type MockFormStore struct {
	mock.Mock
}

func (m *MockFormStore) SaveFormSubmission(ctx context.Context, s *entity.FormSubmission) ([]byte, error) {
	args := m.Called(ctx, s)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type MockStageSource struct {
	mock.Mock
}

func (m *MockStageSource) ListStages(ctx context.Context) ([]entity.StageCount, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]entity.StageCount)
	return rows, args.Error(1)
}
