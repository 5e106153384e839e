package domain

// BodyType тип кузова. ParentID указывает на общую категорию
type BodyType struct {
	ID       int64
	Name     string
	ParentID *int64
}

// CarConfiguration комплектация: поколение модели и тип кузова
type CarConfiguration struct {
	ID           int64
	GenerationID int64
	BodyTypeID   int64
}

// UserCar автомобиль пользователя
type UserCar struct {
	ID              int64
	UserID          int64
	Name            string
	ConfigurationID int64
	IsVerified      bool
}
