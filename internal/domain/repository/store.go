package repository

import "context"

// Transactor runs fn so that every repository call made with the ctx it
// receives commits or aborts together, when the backing store can do that.
// Stores without multi-document transactions call fn directly.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}
