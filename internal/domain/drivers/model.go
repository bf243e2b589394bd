package drivers

import "time"

// roomRentDaily — фиксированная дневная плата за жильё для водителей
// с флагом RoomRent. Снимок значения попадает в запись при создании.
const roomRentDaily = 50.0

type Driver struct {
	ID   int64
	Name string

	// Анкета при приёме на работу (joining form).
	FatherName    string
	Mobile        string
	Email         string
	LicenceNumber string
	AadharNumber  string
	Address       string

	// RoomRent — живёт ли водитель в жилье компании.
	RoomRent bool
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoomRentCharge — дневная плата за жильё для этого водителя.
func (d Driver) RoomRentCharge() float64 {
	if d.RoomRent {
		return roomRentDaily
	}
	return 0
}

// RoomRentFor ищет водителя по имени и возвращает его дневную плату за жильё.
// Незнакомое имя — 0. Используется только на границе импорта Excel, где кроме
// имени в строке ничего нет; внутри системы записи ссылаются на ID.
func RoomRentFor(name string, roster []Driver) float64 {
	for _, d := range roster {
		if d.Name == name {
			return d.RoomRentCharge()
		}
	}
	return 0
}
