package notify

import "testing"

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{150000, "Rp 150.000"},
		{2750000, "Rp 2.750.000"},
	}

	for _, tt := range tests {
		if got := FormatRupiah(tt.amount); got != tt.want {
			t.Errorf("FormatRupiah(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatTripDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-12-25", "Rabu, 25 Desember 2024"},
		{"2025-01-05", "Minggu, 5 Januari 2025"},
		{"2024-08-17T07:00:00+07:00", "Sabtu, 17 Agustus 2024"},
		{"besok pagi", "besok pagi"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FormatTripDate(tt.in); got != tt.want {
			t.Errorf("FormatTripDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
