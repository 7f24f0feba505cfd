package model

import "context"

// UserDirectory is the external user/employee directory the engine reads
// from. The directory owns the data; the engine never writes to it.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (User, error)
}

// User is the directory projection the engine needs: whether the holder of
// the scanned code may enter, and which department to report them under.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	External   bool   `json:"external"`
	Active     bool   `json:"active"`
}
