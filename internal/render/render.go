// Package render produces the HTML fragments embedded into pages: the admin
// bookings table, search results, the confirmation summary and the stats
// tiles. Renderers are pure; they take data in and return markup.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"ssmv/internal/format"
	"ssmv/internal/models"
)

var funcs = template.FuncMap{
	"fmtDate": displayDate,
	"fmtTime": displayTime,
}

// displayDate falls back to the raw value when it does not parse, so a
// malformed record degrades on screen instead of breaking the page.
func displayDate(value string) string {
	out, err := format.Date(value)
	if err != nil {
		return value
	}
	return out
}

func displayTime(value string) string {
	out, err := format.Time(value)
	if err != nil {
		return value
	}
	return out
}

var adminTableTmpl = template.Must(template.New("adminTable").Funcs(funcs).Parse(`<table class="admin-table">
  <thead>
    <tr><th>ID</th><th>Name</th><th>Email</th><th>Phone</th><th>Date</th><th>Time</th><th>Guests</th><th>Details</th><th>Status</th><th></th></tr>
  </thead>
  <tbody>
{{- if not . }}
    <tr><td colspan="10" class="empty">No bookings yet</td></tr>
{{- end }}
{{- range . }}
    <tr data-id="{{ .ID }}">
      <td>{{ .ID }}</td>
      <td>{{ .Name }}</td>
      <td>{{ .Email }}</td>
      <td>{{ .Phone }}</td>
      <td>{{ fmtDate .Date }}</td>
      <td>{{ fmtTime .Time }}</td>
      <td>{{ .NumberOfPeople }}</td>
      <td>{{ .Details }}</td>
      <td><span class="status status-{{ .Status }}">{{ .Status }}</span></td>
      <td>
        <form method="post" action="/admin/bookings/{{ .ID }}/delete">
          <button type="submit" class="delete-btn">Delete</button>
        </form>
      </td>
    </tr>
{{- end }}
  </tbody>
</table>
`))

// AdminTable renders the full bookings table shown on the admin dashboard.
// Each row carries a delete form keyed by the booking id.
func AdminTable(bookings []models.Booking) (template.HTML, error) {
	return execute(adminTableTmpl, bookings)
}

var searchResultsTmpl = template.Must(template.New("searchResults").Funcs(funcs).Parse(`{{- if not . }}
<p class="no-results">No bookings found for your search.</p>
{{- else }}
<table class="results-table">
  <thead>
    <tr><th>Name</th><th>Date</th><th>Time</th><th>Guests</th><th>Status</th></tr>
  </thead>
  <tbody>
{{- range . }}
    <tr>
      <td>{{ .Name }}</td>
      <td>{{ fmtDate .Date }}</td>
      <td>{{ fmtTime .Time }}</td>
      <td>{{ .NumberOfPeople }}</td>
      <td><span class="status status-{{ .Status }}">{{ .Status }}</span></td>
    </tr>
{{- end }}
  </tbody>
</table>
<div class="result-cards">
{{- range . }}
  <div class="result-card">
    <h3>{{ .Name }}</h3>
    <p>{{ fmtDate .Date }} at {{ fmtTime .Time }}</p>
    <p>{{ .NumberOfPeople }} guests</p>
    {{- if .Details }}
    <p class="details">{{ .Details }}</p>
    {{- end }}
    <span class="status status-{{ .Status }}">{{ .Status }}</span>
  </div>
{{- end }}
</div>
{{- end }}
`))

// SearchResults renders the same result set twice, as a table for wide
// screens and as cards for narrow ones.
func SearchResults(bookings []models.Booking) (template.HTML, error) {
	return execute(searchResultsTmpl, bookings)
}

var confirmationTmpl = template.Must(template.New("confirmation").Funcs(funcs).Parse(`<div class="confirmation">
  <h2>Booking Confirmed</h2>
  <dl>
    <dt>Booking ID</dt><dd>{{ .ID }}</dd>
    <dt>Name</dt><dd>{{ .Name }}</dd>
    <dt>Date</dt><dd>{{ fmtDate .Date }}</dd>
    <dt>Time</dt><dd>{{ fmtTime .Time }}</dd>
    <dt>Guests</dt><dd>{{ .NumberOfPeople }}</dd>
    {{- if .Details }}
    <dt>Details</dt><dd>{{ .Details }}</dd>
    {{- end }}
  </dl>
</div>
`))

// Confirmation renders the post-booking summary.
func Confirmation(booking *models.Booking) (template.HTML, error) {
	if booking == nil {
		return "", fmt.Errorf("nil booking")
	}
	return execute(confirmationTmpl, booking)
}

var statsTilesTmpl = template.Must(template.New("statsTiles").Parse(`<div class="stats-tiles">
  <div class="stat-tile"><span class="stat-value">{{ .TotalBookings }}</span><span class="stat-label">Total Bookings</span></div>
  <div class="stat-tile"><span class="stat-value">{{ .TodayBookings }}</span><span class="stat-label">Today</span></div>
  <div class="stat-tile"><span class="stat-value">{{ .TotalPeople }}</span><span class="stat-label">Total Guests</span></div>
</div>
`))

// StatsTiles renders the dashboard counters.
func StatsTiles(stats *models.Stats) (template.HTML, error) {
	if stats == nil {
		return "", fmt.Errorf("nil stats")
	}
	return execute(statsTilesTmpl, stats)
}

func execute(tmpl *template.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return template.HTML(buf.String()), nil
}
