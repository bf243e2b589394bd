package payroll

// Дневной расчётный движок. Все функции чистые: читают только аргументы,
// ничего не мутируют и не возвращают ошибок — числовые значения нормализует
// вызывающая сторона (диалог/импорт), пустое или нечитаемое поле = 0.

// dailyOverhead — фиксированная дневная накладная (амортизация машины и пр.),
// вычитается из P&L безусловно.
const dailyOverhead = 1080.0

// payTier — ступень процента оплаты по суммарной выручке за день.
// Нижняя граница включительно, подбор снизу вверх, первая подошедшая ступень.
type payTier struct {
	MinEarnings float64
	Percent     int
}

var payTiers = []payTier{
	{0, 0},
	{1800, 25},
	{2500, 30},
	{4000, 32},
	{5000, 34},
	{6000, 38},
	{7000, 38},
}

// PayPercent возвращает процент оплаты водителя: ступень по суммарной выручке
// (онлайн + офлайн), затем штраф за недоработанные часы. Не бывает меньше 0.
func PayPercent(earnings, offlineEarnings, loginHours float64) int {
	total := earnings + offlineEarnings

	pct := 0
	for _, t := range payTiers {
		if total >= t.MinEarnings {
			pct = t.Percent
		}
	}

	// Штраф за логин-часы: меньше 9 часов — −10, меньше 11 — −5.
	switch {
	case loginHours < 9:
		pct -= 10
	case loginHours < 11:
		pct -= 5
	}

	if pct < 0 {
		pct = 0
	}
	return pct
}

// Salary — зарплата за день: процент от суммарной выручки.
func Salary(earnings, offlineEarnings float64, payPercent int) float64 {
	total := earnings + offlineEarnings
	return Round2(total * float64(payPercent) / 100)
}

// Payable — сколько водитель сдаёт в кассу за день.
// offlineEarnings и offlineCash в формулу сознательно не входят: так считает
// действующая бухгалтерия (офлайн уже учтён внутри salary через общую выручку).
func Payable(earnings, offlineEarnings, cashCollection, offlineCash, salary,
	cng, petrol, otherExpenses, openingBalance, roomRent float64) float64 {
	_ = earnings
	_ = offlineEarnings
	_ = offlineCash
	return Round2(cashCollection - salary - cng - petrol - otherExpenses + openingBalance - roomRent)
}

// Commission — комиссия агрегатора: наличные минус онлайн-выручка
// (именно онлайн, без офлайна).
func Commission(cashCollection, earnings float64) float64 {
	return Round2(cashCollection - earnings)
}

// ProfitLoss — прибыль/убыток дня после зарплаты, расходов и фиксированной
// накладной dailyOverhead.
func ProfitLoss(earnings, offlineEarnings, salary, cng, toll, petrol, otherExpenses float64) float64 {
	total := earnings + offlineEarnings
	return Round2(total - salary - cng - toll - petrol - otherExpenses - dailyOverhead)
}

// Inputs — сырые поля записи за день, как их ввёл водитель.
type Inputs struct {
	Earnings        float64
	CashCollection  float64
	OfflineEarnings float64
	OfflineCash     float64
	Trips           int
	Toll            float64
	CNG             float64
	Petrol          float64
	OtherExpenses   float64
	LoginHours      float64
	OpeningBalance  float64
	RoomRent        float64
}

// Derived — производные поля записи. Считаются один раз при сохранении
// и хранятся рядом с сырыми; пересчёт только через повторный Derive.
type Derived struct {
	PayPercent int
	Salary     float64
	Payable    float64
	Commission float64
	PL         float64
}

// Derive — единственный путь получения производных полей из сырых.
// И создание записи, и редактирование, и импорт из Excel идут через него.
func Derive(in Inputs) Derived {
	pct := PayPercent(in.Earnings, in.OfflineEarnings, in.LoginHours)
	sal := Salary(in.Earnings, in.OfflineEarnings, pct)
	return Derived{
		PayPercent: pct,
		Salary:     sal,
		Payable: Payable(in.Earnings, in.OfflineEarnings, in.CashCollection, in.OfflineCash,
			sal, in.CNG, in.Petrol, in.OtherExpenses, in.OpeningBalance, in.RoomRent),
		Commission: Commission(in.CashCollection, in.Earnings),
		PL:         ProfitLoss(in.Earnings, in.OfflineEarnings, sal, in.CNG, in.Toll, in.Petrol, in.OtherExpenses),
	}
}
