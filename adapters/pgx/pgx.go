// Package pgx implements the easel storage ports on PostgreSQL using a
// pgx connection pool.
package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lborres/easel/core"
)

type Adapter struct {
	pool *pgxpool.Pool
}

var _ core.Storage = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}
