package testutils

import (
	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendVerification(email, verifyURL string) error {
	args := m.Called(email, verifyURL)
	return args.Error(0)
}

func (m *MockNotifier) SendReset(email, resetURL string) error {
	args := m.Called(email, resetURL)
	return args.Error(0)
}

type MockMailService struct {
	mock.Mock
}

func (m *MockMailService) SendTemplate(templateName string, to []string, subject string, data map[string]any) error {
	args := m.Called(templateName, to, subject, data)
	return args.Error(0)
}
