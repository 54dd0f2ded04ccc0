package player

import "context"

// Repository supplies team rosters. The returned order is significant: the
// first eleven entries are the starting lineup.
type Repository interface {
	ListByTeam(ctx context.Context, teamName string) ([]Player, error)
}
