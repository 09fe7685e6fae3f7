package services

import (
	"github.com/streadway/amqp"

	"github.com/bizzytext/goalcontract/internal/lib/rabbitmq"
	"github.com/bizzytext/goalcontract/internal/models"
)

// AMQPPublisher публикует записанные в журнал сообщения в обменник событий.
type AMQPPublisher struct {
	ch *amqp.Channel
}

// NewAMQPPublisher создает издателя поверх готового канала.
func NewAMQPPublisher(ch *amqp.Channel) *AMQPPublisher {
	return &AMQPPublisher{ch: ch}
}

// PublishDispatched отправляет событие об одной записи журнала.
func (p *AMQPPublisher) PublishDispatched(entry models.DailyLog) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.ExchangeName, rabbitmq.RoutingKeyDispatched, entry)
}
