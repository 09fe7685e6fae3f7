package rabbitmq

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// RoutingKeyDispatched — ключ событий об обработанных слотах.
const RoutingKeyDispatched = "dispatched"

// GetMessageQueues возвращает очереди событий журнала сообщений.
func GetMessageQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "messages.dispatched", RoutingKey: RoutingKeyDispatched},
	}
}
