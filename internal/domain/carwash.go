package domain

// CarWash автомойка
type CarWash struct {
	ID          int64
	Name        string
	LocationID  *int64
	PhoneNumber *string
}

// Box бокс автомойки, отдельно бронируемое место
type Box struct {
	ID        int64
	Name      string
	CarWashID int64
	UserID    *int64 // оператор бокса
}

// IsOperatedBy проверяет, что пользователь оператор бокса
func (b *Box) IsOperatedBy(userID int64) bool {
	return b.UserID != nil && *b.UserID == userID
}
