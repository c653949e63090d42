// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

// Status is the session lifecycle stage.
type Status int

const (
	// LoadingInitial holds from construction until Init has read the store.
	LoadingInitial Status = iota
	Unauthenticated
	Authenticated
)

func (s Status) String() string {
	switch s {
	case LoadingInitial:
		return "loading"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// User is the signed-in administrator.
type User struct {
	Email string
}

// State is a snapshot of the session as the rest of the CLI sees it.
type State struct {
	User   *User
	Status Status
	// IsLoading is true during initial rehydration and while a login is in flight.
	IsLoading bool
}

// IsAuthenticated reports whether a user is signed in.
func (s State) IsAuthenticated() bool {
	return s.User != nil
}
