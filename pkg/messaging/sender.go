package messaging

import (
	"fmt"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
)

// TopicName is the exchange and routing key used for topic.
func TopicName(prefix string, topic ChangeTopic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}

// Connect dials the broker and declares a durable topic exchange for each
// topic this process publishes or listens to.
func Connect(cfg RabbitConfig, topics ...ChangeTopic) (*amqp.Connection, error) {
	conn, err := amqp.Dial(cfg.Url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbit: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	for _, topic := range topics {
		err := ch.ExchangeDeclare(TopicName(cfg.Prefix, topic), "topic", true, false, false, false, nil)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("declare %s: %w", topic, err)
		}
	}
	return conn, nil
}

func SendChange[V any](c *amqp.Connection, prefix string, topic ChangeTopic, data V) error {
	bytes, err := sonic.Marshal(data)
	if err != nil {
		return err
	}
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := TopicName(prefix, topic)
	return ch.Publish(name, name, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        bytes,
	})
}
