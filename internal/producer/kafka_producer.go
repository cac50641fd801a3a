package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mpoulain/f1-bet-platform/internal/shared/kafka"
	"github.com/mpoulain/f1-bet-platform/pkg/contracts/events"
)

// KafkaPublisher publica os eventos de ciclo de vida das apostas.
// Publicação é best-effort depois do commit; nunca falha a requisição.
type KafkaPublisher struct {
	Placed  *kafka.Writer
	Settled *kafka.Writer
}

func NewKafkaPublisher(placed, settled *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Placed: placed, Settled: settled}
}

func (p *KafkaPublisher) PublishBetPlaced(ctx context.Context, e events.BetPlaced) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return kafka.WriteJSON(ctx, p.Placed, e.BetID, b)
}

func (p *KafkaPublisher) PublishBetSettled(ctx context.Context, e events.BetSettled) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return kafka.WriteJSON(ctx, p.Settled, e.BetID, b)
}
