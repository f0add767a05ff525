package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	USER_INFO_UPDATED_QUEUE    = "user.info.updated"
	POST_CREATED_QUEUE         = "post.created"
	NOTIFICATION_CREATED_QUEUE = "notification.created"
)

var queues = []string{
	USER_INFO_UPDATED_QUEUE,
	POST_CREATED_QUEUE,
	NOTIFICATION_CREATED_QUEUE,
}

type MQConn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func New(url string) (*MQConn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	for _, q := range queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, err
		}
	}

	return &MQConn{
		conn: conn,
		ch:   ch,
	}, nil
}

// Publish sends body as a persistent JSON message to queue.
func (mq *MQConn) Publish(ctx context.Context, queue string, body interface{}) error {
	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return err
	}

	return mq.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         bodyJSON,
	})
}

func (mq *MQConn) Consume(queue string) (<-chan amqp.Delivery, error) {
	return mq.ch.Consume(queue, "", false, false, false, false, nil)
}

func (mq *MQConn) Close() error {
	if err := mq.ch.Close(); err != nil {
		return err
	}
	return mq.conn.Close()
}
