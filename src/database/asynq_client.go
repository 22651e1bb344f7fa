package database

import (
	"github.com/hibiken/asynq"
)

// RedisConnOpt builds the asynq connection options for the same Redis the
// token blacklist uses.
func RedisConnOpt(addr, password string) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: addr, Password: password}
}

// NewAsynqClient returns a client for enqueueing background tasks.
func NewAsynqClient(addr, password string) *asynq.Client {
	return asynq.NewClient(RedisConnOpt(addr, password))
}
