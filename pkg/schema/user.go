// Package schema defines the data structures shared by the Celerix commerce services
// and carried on the wire between them.
package schema

// User represents an identity owned by the user registry.
// The ID is assigned by the registry and is never supplied by callers.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
