package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"

	"caseflow/beneficiary"
)

// transferNotice is the wire payload consumed by the notification worker.
type transferNotice struct {
	BeneficiaryID string  `json:"beneficiary_id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	CounselorID   string  `json:"counselor_id"`
	InitialID     *string `json:"initial_counselor_id,omitempty"`
}

// AMQPSender publishes transfer notices to a RabbitMQ queue.
type AMQPSender struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	queue   string
}

func NewAMQPSender(url, queue string) (*AMQPSender, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notify: dial amqp: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("notify: open channel: %w", err)
	}

	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("notify: declare queue %s: %w", queue, err)
	}

	return &AMQPSender{conn: conn, channel: channel, queue: queue}, nil
}

func (s *AMQPSender) SendTransferNotice(ctx context.Context, b beneficiary.Beneficiary) error {
	body, err := json.Marshal(transferNotice{
		BeneficiaryID: b.ID,
		FirstName:     b.FirstName,
		LastName:      b.LastName,
		CounselorID:   b.CounselorID,
		InitialID:     b.InitialCounselorID,
	})
	if err != nil {
		return fmt.Errorf("notify: marshal transfer notice: %w", err)
	}

	err = s.channel.PublishWithContext(ctx, "", s.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("notify: publish transfer notice: %w", err)
	}
	return nil
}

func (s *AMQPSender) Close() error {
	if err := s.channel.Close(); err != nil {
		s.conn.Close()
		return err
	}
	return s.conn.Close()
}
