package notify

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rupiahPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount in whole rupiah, e.g. "Rp 150.000".
func FormatRupiah(amount int64) string {
	return "Rp " + rupiahPrinter.Sprintf("%d", amount)
}

var (
	indonesianDays = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

	indonesianMonths = [...]string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	}
)

// FormatTripDate renders a trip date like "Rabu, 25 Desember 2024". The trip
// date is an opaque string on the order, so anything that is not a calendar
// date or RFC 3339 timestamp is returned unchanged.
func FormatTripDate(tripDate string) string {
	t, err := time.Parse("2006-01-02", tripDate)
	if err != nil {
		t, err = time.Parse(time.RFC3339, tripDate)
		if err != nil {
			return tripDate
		}
	}
	return fmt.Sprintf("%s, %d %s %d",
		indonesianDays[t.Weekday()], t.Day(), indonesianMonths[t.Month()-1], t.Year())
}
