package domain

// Price базовая цена мойки для типа кузова на автомойке
type Price struct {
	ID         int64   `json:"id"`
	CarWashID  int64   `json:"carWashId"`
	BodyTypeID int64   `json:"bodyTypeId"`
	Price      float64 `json:"price"`
}

// Addition дополнительная услуга автомойки
type Addition struct {
	ID        int64
	CarWashID int64
	Name      string
	Price     float64
}

// ToBookingAddition фиксирует цену услуги в бронировании
func (a *Addition) ToBookingAddition() BookingAddition {
	return BookingAddition{AdditionID: a.ID, Name: a.Name, Price: a.Price}
}
