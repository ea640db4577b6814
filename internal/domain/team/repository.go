package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByAbbreviation(ctx context.Context, abbreviation string) (Team, bool, error)
}
