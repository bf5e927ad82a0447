package models

// Session is the single active logged-in user simulated per test context.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
