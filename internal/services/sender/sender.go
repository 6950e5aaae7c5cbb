// Package sender реализует доставку писем подтверждения: потребляет
// сообщения из очереди уведомлений и отправляет их через SMTP.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/smtp"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// Service отправляет письма подтверждения email.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendVerificationEmail обрабатывает сообщение очереди email.verification
// и отправляет письмо с одноразовым токеном подтверждения.
func (s *Service) SendVerificationEmail(body []byte) error {
	var message models.VerificationEmail
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	var subject, bodyText string
	switch message.Kind {
	case models.VerificationKindListing:
		subject = "Подтверждение email для вашего объявления"
		bodyText = fmt.Sprintf("Здравствуйте, %s!\n\nЧтобы продолжить размещение объявления %s, подтвердите ваш email кодом: %s.",
			message.Name, message.ListingID, message.Token)
	default:
		subject = "Подтверждение регистрации на Business-Marketplace"
		bodyText = fmt.Sprintf("Здравствуйте, %s!\n\nДля завершения регистрации подтвердите ваш email кодом: %s.",
			message.Name, message.Token)
	}

	return s.sendEmail(to, subject, bodyText)
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
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
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

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
