package mocks

import "context"

// UnitOfWork runs fn directly with the caller's context and counts runs.
type UnitOfWork struct {
	Runs int
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	u.Runs++
	return fn(ctx)
}
