package domain

import (
	"errors"
)

var (
	// ErrInvalidRank is returned for a tier or division outside the
	// recognized enumerations.
	ErrInvalidRank = errors.New("invalid rank")

	// ErrInvalidTag is returned for a Riot tag that is not 3-5
	// alphanumeric characters.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrAlreadyRegistered is returned when a (user, server) pair is
	// registered twice.
	ErrAlreadyRegistered = errors.New("already registered in this server")

	// ErrNotRegistered is returned when no record exists for a
	// (user, server) pair.
	ErrNotRegistered = errors.New("not registered in this server")

	// ErrLookupFailed is returned when an external call returns a
	// non-success status or a required field is missing.
	ErrLookupFailed = errors.New("lookup failed")

	// ErrRankLookupFailed is returned when the ranked solo queue entry
	// is absent from a player's league entries.
	ErrRankLookupFailed = errors.New("rank lookup failed")
)
