package user

// User is a read-only view of a user account from the user management API
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
}
