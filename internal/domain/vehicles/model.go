package vehicles

import "time"

type Vehicle struct {
	ID     int64
	Number string // гос. номер, уникален
	Type   string // sedan / hatchback / suv — свободный текст

	// AssignedDriverID — водитель по умолчанию для подстановки в диалоге.
	AssignedDriverID *int64

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
