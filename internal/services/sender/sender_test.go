package sender_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sole-app/sole-backend/internal/lib/smtp"
	"github.com/sole-app/sole-backend/internal/models"
	"github.com/sole-app/sole-backend/internal/services/sender"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
	data bytes.Buffer
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

type nopWriteCloser struct{ *bytes.Buffer }

func (nopWriteCloser) Close() error { return nil }

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Error(0) != nil {
		return nil, args.Error(0)
	}
	return nopWriteCloser{&m.data}, nil
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func setupHappyClient(transport *MockTransport, client *MockSMTPClient, recipient string) {
	transport.On("GetSMTPUser").Return("noreply@example.com")
	transport.On("Connect").Return(client, nil).Once()
	client.On("Mail", "noreply@example.com").Return(nil).Once()
	client.On("Rcpt", recipient).Return(nil).Once()
	client.On("Data").Return(nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil).Once()
}

func TestSendVerificationEmail(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	setupHappyClient(transport, client, "user@example.com")

	svc := sender.New(transport, "https://sole.example.com/", newNoopLogger())

	err := svc.SendVerificationEmail("user@example.com", "testuser", "verify-token")
	require.NoError(t, err)

	msg := client.data.String()
	assert.Contains(t, msg, "To: user@example.com")
	assert.Contains(t, msg, "https://sole.example.com/api/users/verify-email?token=verify-token")
	transport.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestSendPasswordResetEmail(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	setupHappyClient(transport, client, "user@example.com")

	svc := sender.New(transport, "https://sole.example.com", newNoopLogger())

	err := svc.SendPasswordResetEmail("user@example.com", "testuser", "reset-token")
	require.NoError(t, err)
	assert.Contains(t, client.data.String(), "/reset-password?token=reset-token")
}

func TestSendTrialExpiringNotification(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	setupHappyClient(transport, client, "user@example.com")

	svc := sender.New(transport, "https://sole.example.com", newNoopLogger())

	body, err := json.Marshal(models.TrialNotification{
		UserID:       7,
		Username:     "testuser",
		Email:        "user@example.com",
		TrialEndDate: time.Now().UTC(),
	})
	require.NoError(t, err)

	err = svc.SendTrialExpiringNotification(body)
	require.NoError(t, err)
	assert.Contains(t, client.data.String(), "testuser")
}

func TestSendTrialExpiringNotificationBadBody(t *testing.T) {
	svc := sender.New(new(MockTransport), "https://sole.example.com", newNoopLogger())

	err := svc.SendTrialExpiringNotification([]byte("not-json"))
	assert.Error(t, err)
}

func TestSendEmailConnectFailure(t *testing.T) {
	transport := new(MockTransport)
	transport.On("GetSMTPUser").Return("noreply@example.com")
	transport.On("Connect").Return(nil, errors.New("dial failed")).Once()

	svc := sender.New(transport, "https://sole.example.com", newNoopLogger())

	err := svc.SendVerificationEmail("user@example.com", "testuser", "token")
	assert.Error(t, err)
}
