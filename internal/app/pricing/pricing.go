// Package pricing считает стоимость аренды игрового сервера.
//
// Все цены в целых центах. Справочные цены локации заданы за расчётный
// период 30 дней (цена за ядро и за GB RAM в месяц); любая длительность
// нормируется на этот период. Округление выполняется ровно один раз,
// на итоговой сумме - промежуточные значения не округляются, чтобы не
// накапливать дрейф.
//
// Движок - чистые функции над уже проверенными входами: отрицательные
// величины должны отсекаться валидацией до вызова.
package pricing

import (
	"math"

	"backend/internal/app/ds"
)

// ReferencePeriodDays расчётный период, за который заданы цены локации
const ReferencePeriodDays = 30

// Price итоговая стоимость. Вычисляется, никогда не изменяется после
// расчёта и не кэшируется.
type Price struct {
	TotalCents int64
}

// HardwareSpec величины, участвующие в расчёте
type HardwareSpec struct {
	CPUPercent   int // 100 = 1 vCore
	RAMMb        int
	DurationDays int
}

// CalculateNew считает линейную стоимость конфигурации в локации:
//
//	(cpu/100 * цена_ядра + ram/1024 * цена_GB) * days/30
//
// Нулевая длительность даёт нулевую цену, а не ошибку.
func CalculateNew(loc ds.Location, cpuPercent, ramMb, durationDays int) Price {
	if durationDays <= 0 {
		return Price{TotalCents: 0}
	}

	perPeriod := float64(cpuPercent)/100.0*float64(loc.CPU.PricePerCoreCents) +
		float64(ramMb)/1024.0*float64(loc.RAM.PricePerGbCents)

	total := perPeriod * float64(durationDays) / float64(ReferencePeriodDays)

	return Price{TotalCents: roundCents(total)}
}

// CalculateUpgrade считает доплату за переход со старой конфигурации на
// новую, обе оцениваются на оставшийся срок remainingDays. Если новая
// конфигурация длиннее по сроку, добавленные дни оплачиваются целиком
// по новой конфигурации.
//
// Политика даунгрейда одна для всех вызовов: отрицательная дельта
// обрезается до нуля, возвратов движок не начисляет.
func CalculateUpgrade(from, to HardwareSpec, loc ds.Location, remainingDays int) Price {
	if remainingDays < 0 {
		remainingDays = 0
	}

	oldTotal := rawCost(loc, from.CPUPercent, from.RAMMb, remainingDays)
	newTotal := rawCost(loc, to.CPUPercent, to.RAMMb, remainingDays)

	delta := newTotal - oldTotal

	// Продление срока сверх оставшегося оплачивается по новой конфигурации
	if to.DurationDays > remainingDays {
		delta += rawCost(loc, to.CPUPercent, to.RAMMb, to.DurationDays-remainingDays)
	}

	if delta < 0 {
		return Price{TotalCents: 0}
	}

	return Price{TotalCents: roundCents(delta)}
}

// rawCost неокруглённая стоимость за days дней
func rawCost(loc ds.Location, cpuPercent, ramMb, days int) float64 {
	if days <= 0 {
		return 0
	}
	perPeriod := float64(cpuPercent)/100.0*float64(loc.CPU.PricePerCoreCents) +
		float64(ramMb)/1024.0*float64(loc.RAM.PricePerGbCents)
	return perPeriod * float64(days) / float64(ReferencePeriodDays)
}

func roundCents(v float64) int64 {
	if v <= 0 {
		return 0
	}
	return int64(math.Round(v))
}
