package reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/metinatakli/cinema-tickets/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultQueue = "seat.reservations"

// ReserveSeatsCommand is the message consumed by the seat booking service.
type ReserveSeatsCommand struct {
	PurchaseID string    `json:"purchase_id,omitempty"`
	AccountID  int64     `json:"account_id"`
	SeatCount  int       `json:"seat_count"`
	IssuedAt   time.Time `json:"issued_at"`
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPSeatReservationService sends seat reservations to the seat booking service
// over RabbitMQ. Messages are persistent and go through the default exchange.
type AMQPSeatReservationService struct {
	queue string
	now   func() time.Time

	mu sync.Mutex
	ch publisher

	conn *amqp.Connection
}

// DialSeatReservationService connects to the broker and declares the durable queue.
func DialSeatReservationService(url, queue string) (*AMQPSeatReservationService, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq: channel open failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq: queue declare failed: %w", err)
	}

	svc := newAMQPSeatReservationService(ch, queue)
	svc.conn = conn

	return svc, nil
}

func newAMQPSeatReservationService(ch publisher, queue string) *AMQPSeatReservationService {
	return &AMQPSeatReservationService{
		queue: queue,
		now:   time.Now,
		ch:    ch,
	}
}

func (a *AMQPSeatReservationService) ReserveSeats(ctx context.Context, accountID int64, seats int) error {
	cmd := ReserveSeatsCommand{
		AccountID: accountID,
		SeatCount: seats,
		IssuedAt:  a.now().UTC(),
	}

	if purchaseID, ok := domain.PurchaseIDFromContext(ctx); ok {
		cmd.PurchaseID = purchaseID.String()
	}

	body, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal command failed: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    cmd.PurchaseID,
		Timestamp:    cmd.IssuedAt,
		Body:         body,
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	err = a.ch.PublishWithContext(ctx,
		"",      // default exchange
		a.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: publish failed: %w", err)
	}

	return nil
}

func (a *AMQPSeatReservationService) Close() error {
	if a.conn == nil {
		return nil
	}

	return a.conn.Close()
}
