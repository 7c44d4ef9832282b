package messaging

import (
	"fmt"
	"log"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ListenForReload binds a queue of its own to the SkillsChanged exchange, so
// every running instance sees every notice. The queue goes away with the
// connection.
func ListenForReload(conn *amqp.Connection, prefix string, reload func(ReloadNotice) error) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	name := TopicName(prefix, SkillsChanged)
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		ch.Close()
		return fmt.Errorf("declare reload queue: %w", err)
	}
	if err = ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		ch.Close()
		return fmt.Errorf("bind reload queue: %w", err)
	}
	msgs, err := ch.Consume(q.Name, "", false, true, false, false, nil)
	if err != nil {
		ch.Close()
		return err
	}
	go func() {
		defer ch.Close()
		for d := range msgs {
			handleReload(d, reload)
		}
	}()
	return nil
}

// handleReload acks a notice once reload succeeded. Broken or failed notices
// are dropped, the next change sends a new one.
func handleReload(d amqp.Delivery, reload func(ReloadNotice) error) {
	notice, err := DecodeReloadNotice(d.Body)
	if err == nil {
		err = reload(notice)
	}
	if err != nil {
		log.Printf("Reload notice rejected: %v", err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

// DecodeReloadNotice accepts an empty body as a bare reload request.
func DecodeReloadNotice(body []byte) (ReloadNotice, error) {
	notice := ReloadNotice{}
	if len(body) == 0 {
		return notice, nil
	}
	if err := sonic.Unmarshal(body, &notice); err != nil {
		return notice, fmt.Errorf("decode reload notice: %w", err)
	}
	return notice, nil
}
