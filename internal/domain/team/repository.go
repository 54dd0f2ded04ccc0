package team

import "context"

// Repository describes team catalogue needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByName(ctx context.Context, name string) (Team, bool, error)
}
