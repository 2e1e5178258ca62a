package pricing

import (
	"math"
	"testing"

	"backend/internal/app/ds"
)

func testLocation(perCore, perGb int64) ds.Location {
	return ds.Location{
		ID:      1,
		Name:    "eu-west",
		Enabled: true,
		CPU:     ds.CPUPrice{LocationID: 1, PricePerCoreCents: perCore},
		RAM:     ds.RAMPrice{LocationID: 1, PricePerGbCents: perGb},
	}
}

func TestCalculateNewReferenceScenario(t *testing.T) {
	// 1 ядро + 2GB на полный период: 500*1 + 200*2 = 900
	loc := testLocation(500, 200)

	got := CalculateNew(loc, 100, 2048, 30)
	if got.TotalCents != 900 {
		t.Errorf("CalculateNew(100, 2048, 30) = %d, want 900", got.TotalCents)
	}
}

func TestCalculateNewNonNegative(t *testing.T) {
	loc := testLocation(500, 200)

	cases := []struct {
		name     string
		cpu, ram int
		days     int
	}{
		{"zero everything", 0, 0, 0},
		{"zero duration", 100, 2048, 0},
		{"zero resources", 0, 0, 30},
		{"tiny ram", 1, 1, 1},
		{"large", 1600, 65536, 365},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateNew(loc, tc.cpu, tc.ram, tc.days)
			if got.TotalCents < 0 {
				t.Errorf("total %d is negative", got.TotalCents)
			}
		})
	}
}

func TestCalculateNewZeroDurationIsZero(t *testing.T) {
	loc := testLocation(500, 200)

	if got := CalculateNew(loc, 400, 8192, 0); got.TotalCents != 0 {
		t.Errorf("zero duration must cost 0, got %d", got.TotalCents)
	}
}

// Линейность по длительности: удвоенный срок стоит вдвое дороже с
// точностью до одного цента округления.
func TestCalculateNewLinearInDuration(t *testing.T) {
	loc := testLocation(537, 213)

	for _, d := range []int{1, 7, 10, 15, 30, 45} {
		single := CalculateNew(loc, 150, 3072, d).TotalCents
		double := CalculateNew(loc, 150, 3072, 2*d).TotalCents

		diff := double - 2*single
		if diff < -1 || diff > 1 {
			t.Errorf("days=%d: 2*price(d)=%d vs price(2d)=%d, drift %d cents", d, 2*single, double, diff)
		}
	}
}

func TestCalculateNewRoundsOnceAtTotal(t *testing.T) {
	// per-period: 1.5 ядра * 333 + 1.5GB * 111 = 499.5 + 166.5 = 666,
	// за 10 дней: 222.0 - округления промежуточных значений дали бы другой итог
	loc := testLocation(333, 111)

	got := CalculateNew(loc, 150, 1536, 10)
	if got.TotalCents != 222 {
		t.Errorf("got %d, want 222", got.TotalCents)
	}
}

func TestCalculateUpgradeNoopIsZero(t *testing.T) {
	loc := testLocation(500, 200)

	specs := []HardwareSpec{
		{CPUPercent: 100, RAMMb: 2048, DurationDays: 10},
		{CPUPercent: 250, RAMMb: 6144, DurationDays: 30},
		{CPUPercent: 1, RAMMb: 1, DurationDays: 1},
	}

	for _, s := range specs {
		got := CalculateUpgrade(s, s, loc, s.DurationDays)
		if got.TotalCents != 0 {
			t.Errorf("no-op upgrade of %+v costs %d, want 0", s, got.TotalCents)
		}
	}
}

// Согласованность двух точек входа: дельта за одинаковый срок равна
// разнице полных цен (с точностью до округления).
func TestCalculateUpgradeConsistentWithCalculateNew(t *testing.T) {
	loc := testLocation(500, 200)

	from := HardwareSpec{CPUPercent: 100, RAMMb: 1024, DurationDays: 10}
	to := HardwareSpec{CPUPercent: 200, RAMMb: 1024, DurationDays: 10}

	delta := CalculateUpgrade(from, to, loc, 10).TotalCents
	want := CalculateNew(loc, to.CPUPercent, to.RAMMb, 10).TotalCents -
		CalculateNew(loc, from.CPUPercent, from.RAMMb, 10).TotalCents

	if diff := delta - want; diff < -1 || diff > 1 {
		t.Errorf("delta %d, want %d (within 1 cent)", delta, want)
	}
	if delta <= 0 {
		t.Errorf("adding a core over 10 days must cost a positive amount, got %d", delta)
	}

	// доплата пропорциональна добавленному ядру: 500 * 10/30
	wantExact := int64(math.Round(500.0 * 10.0 / 30.0))
	if delta != wantExact {
		t.Errorf("delta %d, want %d", delta, wantExact)
	}
}

func TestCalculateUpgradeDowngradeClampsToZero(t *testing.T) {
	loc := testLocation(500, 200)

	from := HardwareSpec{CPUPercent: 400, RAMMb: 8192, DurationDays: 20}
	to := HardwareSpec{CPUPercent: 100, RAMMb: 2048, DurationDays: 20}

	got := CalculateUpgrade(from, to, loc, 20)
	if got.TotalCents != 0 {
		t.Errorf("downgrade delta must clamp to 0, got %d", got.TotalCents)
	}
}

func TestCalculateUpgradeExtendedDuration(t *testing.T) {
	loc := testLocation(600, 300)

	from := HardwareSpec{CPUPercent: 100, RAMMb: 1024, DurationDays: 10}
	to := HardwareSpec{CPUPercent: 100, RAMMb: 1024, DurationDays: 40}

	// та же конфигурация, срок продлён на 30 дней: доплата за ровно один период
	got := CalculateUpgrade(from, to, loc, 10)
	want := CalculateNew(loc, 100, 1024, 30).TotalCents
	if got.TotalCents != want {
		t.Errorf("extension cost %d, want %d", got.TotalCents, want)
	}
}

func TestCalculateUpgradeZeroRemainingDays(t *testing.T) {
	loc := testLocation(500, 200)

	from := HardwareSpec{CPUPercent: 100, RAMMb: 1024}
	to := HardwareSpec{CPUPercent: 200, RAMMb: 2048}

	// нулевой оставшийся срок без продления - цена 0, не ошибка
	if got := CalculateUpgrade(from, to, loc, 0); got.TotalCents != 0 {
		t.Errorf("zero remaining days must cost 0, got %d", got.TotalCents)
	}
}
