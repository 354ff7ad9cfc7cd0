package queue

import amqp "github.com/rabbitmq/amqp091-go"

// Acknowledger settles a single delivery.
type Acknowledger interface {
	Ack() error
	Nack(requeue bool) error
}

// Message is one delivery awaiting an explicit ack or nack.
type Message struct {
	Body        []byte
	Redelivered bool
	MessageID   string
	Acknowledger
}

type deliveryAcker struct {
	d amqp.Delivery
}

func (a deliveryAcker) Ack() error {
	return a.d.Ack(false)
}

func (a deliveryAcker) Nack(requeue bool) error {
	return a.d.Nack(false, requeue)
}
