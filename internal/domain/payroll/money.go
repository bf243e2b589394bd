package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Round2 округляет валютные суммы до копеек (2 знака, half away from zero).
// Единая точка округления для всех формул — и дневных, и недельных.
// На отрицательных половинках уходит от нуля: −10.005 → −10.01 (округление
// к +∞ дало бы −10.00); на неотрицательных суммах правила совпадают.
func Round2(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}

// FormatINR форматирует сумму для сообщений бота.
func FormatINR(x float64) string {
	return fmt.Sprintf("₹%.2f", x)
}
