package services

import "context"

// Service is a single use case: one input, one result, one error.
// Decorators such as auth.WithAuthentication compose over this shape.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}
