// Package sender отправляет сервисные письма по SMTP: подтверждение
// почты, сброс пароля и уведомления об окончании пробного периода.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sole-app/sole-backend/internal/lib/sl"
	"github.com/sole-app/sole-backend/internal/lib/smtp"
	"github.com/sole-app/sole-backend/internal/models"
)

// Service отвечает за формирование и отправку писем.
type Service struct {
	transport smtp.TransportInterface
	baseURL   string
	log       *slog.Logger
}

// New создает новый экземпляр Service. baseURL используется для
// построения ссылок в письмах.
func New(transport smtp.TransportInterface, baseURL string, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		baseURL:   strings.TrimRight(baseURL, "/"),
		log:       log,
	}
}

// SendVerificationEmail отправляет письмо со ссылкой подтверждения почты.
func (s *Service) SendVerificationEmail(email, username, token string) error {
	link := s.baseURL + "/api/users/verify-email?token=" + token
	subject := "Подтверждение электронной почты"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nДля подтверждения почты перейдите по ссылке: %s\n\nСсылка действует 24 часа.",
		username, link)

	return s.sendEmail([]string{email}, subject, bodyText)
}

// SendPasswordResetEmail отправляет письмо со ссылкой сброса пароля.
func (s *Service) SendPasswordResetEmail(email, username, token string) error {
	link := s.baseURL + "/reset-password?token=" + token
	subject := "Сброс пароля"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nДля сброса пароля перейдите по ссылке: %s\n\nЕсли вы не запрашивали сброс, проигнорируйте это письмо. Ссылка действует один час.",
		username, link)

	return s.sendEmail([]string{email}, subject, bodyText)
}

// SendTrialExpiringNotification обрабатывает сообщение из очереди
// уведомлений и отправляет письмо об окончании пробного периода.
func (s *Service) SendTrialExpiringNotification(body []byte) error {
	var message models.TrialNotification
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := "Пробный период заканчивается сегодня"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nВаш пробный период заканчивается сегодня.\nЧтобы сохранить доступ, выберите тариф: %s/subscriptions.",
		message.Username, s.baseURL)

	return s.sendEmail([]string{message.Email}, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
