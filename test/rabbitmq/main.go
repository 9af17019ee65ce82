package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/streadway/amqp"
)

const (
	rabbitMQHost     = "127.0.0.1"
	rabbitMQPort     = "5672"
	rabbitMQUser     = "guest"
	rabbitMQPassword = "guest"
	exchangeName     = "score-events"
	queueName        = "score-events-debug"
)

// buildRabbitMQURL builds the broker URL, encoding credential characters.
func buildRabbitMQURL() string {
	encodedUser := url.QueryEscape(rabbitMQUser)
	encodedPassword := url.QueryEscape(rabbitMQPassword)

	return fmt.Sprintf("amqp://%s:%s@%s:%s/", encodedUser, encodedPassword, rabbitMQHost, rabbitMQPort)
}

// consume drains every round.saved / match.saved event the service publishes
// and prints the payloads. Debugging aid only.
func consume(ctx context.Context) error {
	conn, err := amqp.Dial(buildRabbitMQURL())
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err = ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(queueName, false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	// One binding per event kind; '#' would do, but explicit keys document
	// what the service emits.
	for _, key := range []string{"round.saved", "match.saved"} {
		if err = ch.QueueBind(q.Name, key, exchangeName, false, nil); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	log.Printf("consuming %s events, ctrl-c to stop", exchangeName)
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			log.Printf("[%s] %s", msg.RoutingKey, string(msg.Body))
		}
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := consume(ctx); err != nil {
		log.Fatal(err)
	}
}
