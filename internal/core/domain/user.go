package domain

// User represents a staff member allowed to operate rental terminals.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"` // Unique
	PasswordHash string `json:"-"`     // bcrypt hash; empty for federated accounts
	IsAdmin      bool   `json:"isAdmin"`
	AuditFields
}
