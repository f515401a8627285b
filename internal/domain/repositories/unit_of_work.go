package repositories

import "context"

// UnitOfWork runs a function inside a single transaction so that related
// writes, such as a payment record and the loan balance it reduces, commit
// or roll back together.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
