package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди уведомлений: пока одна,
// про истекающие пробные периоды.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notifications.trial", RoutingKey: "trial_expiring"},
	}
}
