package staticdata

import "context"

// Repository describes static game data persistence.
type Repository interface {
	// AddChampions inserts champions whose ChampionID is not stored yet and
	// leaves existing rows untouched.
	AddChampions(ctx context.Context, champions []Champion) (int, error)
	// ReplaceSpells swaps the whole spell table atomically.
	ReplaceSpells(ctx context.Context, spells []Spell) (int, error)
	ListChampions(ctx context.Context) ([]Champion, error)
	ListSpells(ctx context.Context) ([]Spell, error)
}
