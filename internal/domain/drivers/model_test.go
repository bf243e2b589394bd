package drivers

import "testing"

func TestRoomRentFor(t *testing.T) {
	roster := []Driver{
		{ID: 1, Name: "Ramesh Kumar", RoomRent: true},
		{ID: 2, Name: "Suresh Singh", RoomRent: false},
	}
	tests := []struct {
		name string
		want float64
	}{
		{"Ramesh Kumar", 50},
		{"Suresh Singh", 0},
		{"Unknown Driver", 0}, // незнакомое имя — не ошибка, просто 0
		{"", 0},
	}
	for _, tt := range tests {
		if got := RoomRentFor(tt.name, roster); got != tt.want {
			t.Errorf("RoomRentFor(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
