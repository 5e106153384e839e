package domain

// User учетная запись
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsAdmin      bool
}

// Actor пользователь, выполняющий запрос
type Actor struct {
	UserID  int64
	IsAdmin bool
}
