// Package notify публикует почтовые уведомления в RabbitMQ.
// Отправка для вызывающего — fire-and-forget: доставку выполняет
// отдельный сервис-потребитель (cmd/sender).
package notify

import (
	"fmt"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/business-marketplace/internal/models"
	"github.com/magabrotheeeer/business-marketplace/internal/rabbitmq"
)

// Service публикует сообщения в exchange уведомлений.
type Service struct {
	ch *amqp.Channel
}

// New создает новый экземпляр Service.
func New(ch *amqp.Channel) *Service {
	return &Service{ch: ch}
}

// SendVerification публикует письмо с токеном подтверждения.
func (s *Service) SendVerification(msg models.VerificationEmail) error {
	const op = "notify.SendVerification"
	err := rabbitmq.PublishMessage(s.ch, "notifications", rabbitmq.RoutingKeyVerification, msg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
