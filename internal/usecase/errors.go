package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrSummonerNotFound      = errors.New("summoner not found")
	ErrRefreshCooldown       = errors.New("refresh cooldown active")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
