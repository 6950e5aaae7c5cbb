package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации в exchange уведомлений.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Ключи маршрутизации писем.
const (
	RoutingKeyVerification = "verification"
)

// GetNotificationQueues возвращает очереди почтовых уведомлений маркетплейса.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "email.verification", RoutingKey: RoutingKeyVerification},
		// при необходимости дополнительные очереди для других воркеров
	}
}
