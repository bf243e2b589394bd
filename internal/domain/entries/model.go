package entries

import (
	"time"

	"github.com/bncabs/payroll-bot/internal/domain/payroll"
)

// Entry — одна запись «водитель-машина-день». Сырые поля вводит водитель,
// производные заполняет payroll.Derive при сохранении. Запись неизменяема,
// кроме явного редактирования — оно обязано пересчитать производные.
type Entry struct {
	ID        int64
	Date      time.Time // календарная дата, без времени
	DriverID  int64
	VehicleID int64

	// Денормализованные имена для вывода/экспорта, заполняются при чтении.
	Driver  string
	Vehicle string

	payroll.Inputs
	payroll.Derived

	// Source: "bot" либо "import:<batch uuid>".
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateKey — дата в сортируемом ISO-виде (ключи недель, экспорт).
func (e Entry) DateKey() string {
	return e.Date.Format("2006-01-02")
}
