package rabbitmq

import (
	"context"
	"log"

	"github.com/cenkalti/backoff/v4"
)

// logError helper function to log an error.
func logError(_ context.Context, err error) {
	if err == nil {
		return
	}

	log.Printf("amqp: %v", err)
}

// newBackoff the function to generate the backoff policy
// a variable in order to reduce the backoff in tests.
var newBackoff = defaultBackoff

// defaultBackoff generates a new backoff to use when dialing the broker.
func defaultBackoff(ctx context.Context) backoff.BackOff {
	return backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
}
