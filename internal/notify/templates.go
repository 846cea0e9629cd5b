package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/farellandr/vakansik/internal/models"
)

type OrderSummary struct {
	OrderID       string
	TripName      string
	TripDate      string
	MeetingPoint  string
	AmountIDR     int64
	ChannelCode   string
	CustomerEmail string
	Guests        []models.JoinedUser
}

type templateData struct {
	OrderSummary
	FormattedDate   string
	FormattedAmount string
}

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

var userTemplate = template.Must(template.New("payment_succeeded").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2 style="color: #0f766e;">Pembayaran Berhasil!</h2>
  <p>Terima kasih, pembayaran untuk pesanan kamu sudah kami terima.</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>ID Pesanan</strong></td><td>{{.OrderID}}</td></tr>
    <tr><td><strong>Trip</strong></td><td>{{.TripName}}</td></tr>
    <tr><td><strong>Tanggal</strong></td><td>{{.FormattedDate}}</td></tr>
    <tr><td><strong>Total</strong></td><td>{{.FormattedAmount}}</td></tr>
    <tr><td><strong>Meeting Point</strong></td><td>{{.MeetingPoint}}</td></tr>
  </table>
  <p>Sampai jumpa di perjalanan!<br>Tim Vakansik</p>
</body>
</html>`))

var adminTemplate = template.Must(template.New("admin_booking").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>Booking Baru Terkonfirmasi</h2>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>ID Pesanan</strong></td><td>{{.OrderID}}</td></tr>
    <tr><td><strong>Pemesan</strong></td><td>{{.CustomerEmail}}</td></tr>
    <tr><td><strong>Trip</strong></td><td>{{.TripName}}</td></tr>
    <tr><td><strong>Tanggal</strong></td><td>{{.FormattedDate}}</td></tr>
    <tr><td><strong>Total</strong></td><td>{{.FormattedAmount}}</td></tr>
    <tr><td><strong>Metode</strong></td><td>{{.ChannelCode}}</td></tr>
    <tr><td><strong>Meeting Point</strong></td><td>{{.MeetingPoint}}</td></tr>
  </table>
  <h3>Peserta ({{len .Guests}})</h3>
  <table cellpadding="6" border="1" style="border-collapse: collapse;">
    <tr><th>#</th><th>Nama</th><th>No. HP</th><th>No. KTP</th></tr>
    {{range $i, $g := .Guests}}<tr><td>{{inc $i}}</td><td>{{$g.Name}}</td><td>{{$g.PhoneNumber}}</td><td>{{if $g.IDCardNumber}}{{$g.IDCardNumber}}{{else}}-{{end}}</td></tr>
    {{end}}
  </table>
</body>
</html>`))

func render(tmpl *template.Template, summary OrderSummary) (string, error) {
	data := templateData{
		OrderSummary:    summary,
		FormattedDate:   FormatTripDate(summary.TripDate),
		FormattedAmount: FormatRupiah(summary.AmountIDR),
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
