package analysis

import "errors"

var (
	// ErrNoRepos is returned when an analysis request names no repositories
	ErrNoRepos = errors.New("no repositories given")

	// ErrTooManyRepos is returned when a batch exceeds the configured size limit
	ErrTooManyRepos = errors.New("too many repositories in one batch")
)
