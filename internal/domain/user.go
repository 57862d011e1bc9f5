package domain

import "time"

// User is an account that can author and rate posts.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserProfile carries the public profile and the reputation counter.
// Reputation is only ever mutated additively by named events (see
// reputation.go); it is never recomputed from history and may go negative.
type UserProfile struct {
	UserID     int64
	Nickname   string
	Intro      string
	ViewCount  int
	Reputation int
}
