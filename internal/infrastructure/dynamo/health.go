package dynamo

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog/log"
)

// Prober periodically checks DynamoDB reachability by describing a table.
// The HTTP layer uses its state for /health and to reject writes with 503
// while the database is unreachable.
type Prober struct {
	client    *dynamodb.Client
	tableName string
	connected atomic.Bool
}

func NewProber(client *dynamodb.Client, tableName string) *Prober {
	return &Prober{client: client, tableName: tableName}
}

// Connected reports the last observed reachability state.
func (p *Prober) Connected() bool {
	return p.connected.Load()
}

// Check performs a single probe and updates the state.
func (p *Prober) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := p.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(p.tableName),
	})
	ok := err == nil
	if was := p.connected.Swap(ok); was != ok {
		if ok {
			log.Info().Msg("database connected")
		} else {
			log.Warn().Err(err).Msg("database disconnected")
		}
	}
	return ok
}

// Run probes every interval until ctx is cancelled.
func (p *Prober) Run(ctx context.Context, interval time.Duration) {
	p.Check(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}
