package tracking

import (
	"log"

	"github.com/matst80/skill-finder/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitTracking struct {
	prefix     string
	connection *amqp.Connection
}

func NewRabbitTracking(cfg messaging.RabbitConfig) (*RabbitTracking, error) {
	conn, err := messaging.Connect(cfg, messaging.SearchTracking)
	if err != nil {
		return nil, err
	}
	return &RabbitTracking{
		prefix:     cfg.Prefix,
		connection: conn,
	}, nil
}

func (t *RabbitTracking) Close() error {
	return t.connection.Close()
}

func (t *RabbitTracking) TrackSearch(event SearchEvent) {
	err := messaging.SendChange(t.connection, t.prefix, messaging.SearchTracking, event)
	if err != nil {
		log.Println("Error sending search event: ", err)
	}
}
