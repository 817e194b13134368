package stay_test

import (
	"testing"
	"time"

	"triply/internal/domain"
	"triply/internal/stay"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := stay.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func wantStay(t *testing.T, got domain.Stay, nights int, total float64) {
	t.Helper()
	if got.Nights != nights || got.Total != total {
		t.Fatalf("want %d nights / %v, got %d / %v", nights, total, got.Nights, got.Total)
	}
}

func TestCompute_TwoNights(t *testing.T) {
	got := stay.Compute(mustDate(t, "2024-01-01"), mustDate(t, "2024-01-03"), 100)

	wantStay(t, got, 2, 200)
	if s := stay.FormatTotal(got.Total); s != "200.00" {
		t.Fatalf("FormatTotal: %q", s)
	}
}

func TestCompute_SameDayIsOneNight(t *testing.T) {
	d := mustDate(t, "2024-01-01")
	wantStay(t, stay.Compute(d, d, 150), 1, 150)
}

func TestCompute_InvertedRangeIsOneNight(t *testing.T) {
	wantStay(t, stay.Compute(mustDate(t, "2024-01-10"), mustDate(t, "2024-01-01"), 80), 1, 80)
}

func TestCompute_RoundsToNearestDay(t *testing.T) {
	in := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)

	// 2 days 11 hours rounds down, 2 days 12 hours rounds up.
	if n := stay.Compute(in, in.Add(59*time.Hour), 1).Nights; n != 2 {
		t.Fatalf("59h: want 2 nights, got %d", n)
	}
	if n := stay.Compute(in, in.Add(60*time.Hour), 1).Nights; n != 3 {
		t.Fatalf("60h: want 3 nights, got %d", n)
	}
}

func TestCompute_NightsNeverBelowOne(t *testing.T) {
	base := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{-720 * time.Hour, -1 * time.Hour, 0, time.Hour, 11 * time.Hour} {
		got := stay.Compute(base, base.Add(offset), 99.5)
		if got.Nights < 1 {
			t.Fatalf("offset %s: %d nights", offset, got.Nights)
		}
		if got.Total != 99.5*float64(got.Nights) {
			t.Fatalf("offset %s: total %v for %d nights", offset, got.Total, got.Nights)
		}
	}
}

func TestCompute_TotalIsExactProduct(t *testing.T) {
	price := 33.33
	got := stay.Compute(mustDate(t, "2024-02-27"), mustDate(t, "2024-03-02"), price)

	wantStay(t, got, 4, price*4) // leap year
}

func TestQuote_UsesRequestFields(t *testing.T) {
	req := domain.StayRequest{
		Checkin:      mustDate(t, "2024-05-01"),
		Checkout:     mustDate(t, "2024-05-06"),
		NightlyPrice: 70,
		Guests:       2,
	}
	wantStay(t, stay.Quote(req), 5, 350)
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "01/02/2024", "2024-13-01", "tomorrow"} {
		if _, err := stay.ParseDate(s); err == nil {
			t.Fatalf("%q should not parse", s)
		}
	}
}

func TestNightsLabel(t *testing.T) {
	if got := stay.NightsLabel(1); got != "1 night" {
		t.Fatalf("got %q", got)
	}
	if got := stay.NightsLabel(3); got != "3 nights" {
		t.Fatalf("got %q", got)
	}
}
