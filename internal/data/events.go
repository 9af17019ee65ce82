package data

import (
	"fmt"
	"net/url"
	"time"

	"scorekeeper/internal/biz"
	"scorekeeper/internal/conf"

	"github.com/streadway/amqp"
	"github.com/yola1107/kratos/v2/log"
)

const (
	eventExchange = "score-events"
	roundSavedKey = "round.saved"
	matchSavedKey = "match.saved"
)

// EventPublisher pushes storage events to RabbitMQ for downstream consumers.
// Delivery is best effort: scoring never waits on the broker and a failed
// publish only logs.
type EventPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *log.Helper
}

// NewEventPublisher .
func NewEventPublisher(c *conf.Data, logger log.Logger) (*EventPublisher, func(), error) {
	addr := fmt.Sprintf("amqp://%s:%s@%s:%d/%s",
		url.QueryEscape(c.Rabbitmq.Username),
		url.QueryEscape(c.Rabbitmq.Password),
		c.Rabbitmq.Host, c.Rabbitmq.Port,
		url.QueryEscape(c.Rabbitmq.Vhost))
	conn, err := amqp.Dial(addr)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	if err := ch.ExchangeDeclare(eventExchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, err
	}
	pub := &EventPublisher{conn: conn, ch: ch, log: log.NewHelper(logger)}
	cleanup := func() {
		_ = pub.ch.Close()
		_ = pub.conn.Close()
	}
	return pub, cleanup, nil
}

func (p *EventPublisher) publish(key string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.log.Warnf("encode %s event: %v", key, err)
		return
	}
	err = p.ch.Publish(eventExchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		p.log.Warnf("publish %s event: %v", key, err)
	}
}

// RoundSaved announces a stored or rewritten round record.
func (p *EventPublisher) RoundSaved(r *biz.RoundRecord) { p.publish(roundSavedKey, r) }

// MatchSaved announces a finalized or recomputed match summary.
func (p *EventPublisher) MatchSaved(m *biz.MatchSummary) { p.publish(matchSavedKey, m) }
