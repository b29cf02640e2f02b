// Package request defines the JSON request bodies accepted by the API.
package request

// Register is the request body for creating an account.
type Register struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login is the request body for authenticating.
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
