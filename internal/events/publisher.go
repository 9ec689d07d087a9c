// Package events publishes transaction lifecycle events to Kafka for
// downstream reporting. Publishing is best effort and never blocks a
// provider callback outcome.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TopicBetPlaced  = "aix.bet_placed"
	TopicBetSettled = "aix.bet_settled"
)

// BetPlaced is emitted after a debit callback commits.
type BetPlaced struct {
	TrxID     string  `json:"trxId"`
	PlayID    string  `json:"playId"`
	Currency  string  `json:"currency"`
	BetAmount float64 `json:"betAmount"`
	TsUnixMs  int64   `json:"tsUnixMs"`
}

// BetSettled is emitted after a credit callback commits.
type BetSettled struct {
	TrxID     string  `json:"trxId"`
	PlayID    string  `json:"playId"`
	Currency  string  `json:"currency"`
	WinAmount float64 `json:"winAmount"`
	TsUnixMs  int64   `json:"tsUnixMs"`
}

type KafkaPublisher struct {
	placed  *kafka.Writer
	settled *kafka.Writer
}

// NewKafkaPublisher wires writers for both transaction topics against the
// given broker list ("a:9092,b:9092").
func NewKafkaPublisher(brokers string) *KafkaPublisher {
	return &KafkaPublisher{
		placed:  newWriter(brokers, TopicBetPlaced),
		settled: newWriter(brokers, TopicBetSettled),
	}
}

func newWriter(brokers, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func (p *KafkaPublisher) PublishBetPlaced(ctx context.Context, e BetPlaced) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.placed.WriteMessages(ctx, kafka.Message{Key: []byte(e.TrxID), Value: b})
}

func (p *KafkaPublisher) PublishBetSettled(ctx context.Context, e BetSettled) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.settled.WriteMessages(ctx, kafka.Message{Key: []byte(e.TrxID), Value: b})
}

func (p *KafkaPublisher) Close() error {
	if err := p.placed.Close(); err != nil {
		return err
	}
	return p.settled.Close()
}
