package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/jszwec/csvutil"
	"github.com/phpdave11/gofpdf"
	"github.com/samber/lo"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
	"tripplanner/internal/utils"
)

// ExportService renders a stored trip as PDF, iCalendar or a CSV cost
// breakdown. Totals are recomputed before rendering.
type ExportService struct {
	Trips     TripStore
	RequestID string
}

// Document is a rendered export.
type Document struct {
	Body        []byte
	Filename    string
	ContentType string
}

func (s ExportService) PDF(userID, tripID int64) (Document, error) {
	trip, err := s.load(userID, tripID)
	if err != nil {
		return Document{}, err
	}
	body, err := buildItineraryPDF(trip)
	if err != nil {
		return Document{}, fmt.Errorf("render pdf: %w", err)
	}
	utils.LogEvent(s.RequestID, "export", "pdf", fmt.Sprintf("trip_id=%d bytes=%d", trip.ID, len(body)))
	return Document{Body: body, Filename: exportFilename(trip, "pdf"), ContentType: "application/pdf"}, nil
}

func (s ExportService) ICS(userID, tripID int64) (Document, error) {
	trip, err := s.load(userID, tripID)
	if err != nil {
		return Document{}, err
	}
	body := buildItineraryICS(trip, time.Now())
	utils.LogEvent(s.RequestID, "export", "ics", fmt.Sprintf("trip_id=%d days=%d", trip.ID, len(trip.Itinerary)))
	return Document{Body: body, Filename: exportFilename(trip, "ics"), ContentType: "text/calendar; charset=utf-8"}, nil
}

func (s ExportService) CSV(userID, tripID int64) (Document, error) {
	trip, err := s.load(userID, tripID)
	if err != nil {
		return Document{}, err
	}
	body, err := buildCostCSV(trip)
	if err != nil {
		return Document{}, fmt.Errorf("render csv: %w", err)
	}
	utils.LogEvent(s.RequestID, "export", "csv", fmt.Sprintf("trip_id=%d bytes=%d", trip.ID, len(body)))
	return Document{Body: body, Filename: exportFilename(trip, "csv"), ContentType: "text/csv; charset=utf-8"}, nil
}

func (s ExportService) load(userID, tripID int64) (models.Trip, error) {
	trip, err := s.Trips.GetByID(tripID, userID)
	if err != nil {
		return models.Trip{}, err
	}
	trip, _ = domain.RecomputeTripTotals(trip)
	return trip, nil
}

func buildItineraryPDF(t models.Trip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	cur := t.Budget.Currency

	pdf.SetTitle(tr("Trip to "+t.Destination), false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("Trip to "+t.Destination))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Dates     : %s to %s (%d days)", utils.FormatDate(t.StartDate), utils.FormatDate(t.EndDate), t.Duration()),
		fmt.Sprintf("Status    : %s", t.Status),
		fmt.Sprintf("Budget    : %s", utils.FormatMoney(t.Budget.Total, cur)),
		fmt.Sprintf("Spent     : %s", utils.FormatMoney(t.Budget.Spent, cur)),
		fmt.Sprintf("Remaining : %s", utils.FormatMoney(t.Budget.Remaining, cur)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, tr(l))
		pdf.Ln(7)
	}

	for _, day := range t.Itinerary {
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "B", 14)
		heading := fmt.Sprintf("Day %d", day.Day)
		if !t.StartDate.IsZero() {
			heading += " - " + utils.FormatDate(utils.DayDate(t.StartDate, day.Day))
		}
		pdf.Cell(0, 8, tr(heading))
		pdf.Ln(9)

		pdf.SetFont("Helvetica", "", 11)
		for _, p := range day.Places {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("- %s (%s): %s", p.Name, p.Category, utils.FormatMoney(p.EstimatedCost.Value, cur))), "", "", false)
		}
		for _, m := range day.Meals {
			label := orDash(string(m.Type))
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("- %s: %s, %s", label, orDash(m.Suggestion), utils.FormatMoney(m.EstimatedCost.Value, cur))), "", "", false)
		}
		if mode := strings.TrimSpace(day.Transportation.Mode); mode != "" || day.Transportation.EstimatedCost.Value > 0 {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("- Transport (%s): %s", orDash(mode), utils.FormatMoney(day.Transportation.EstimatedCost.Value, cur))), "", "", false)
		}
		if a := day.Accommodation; a != nil {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("- Stay at %s: %s", orDash(a.Name), utils.FormatMoney(a.EstimatedCost.Value, cur))), "", "", false)
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, tr("Day total: "+utils.FormatMoney(day.TotalDayCost.Value, cur)))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr("Total: "+utils.FormatMoney(t.Summary.TotalCost.Value, cur)))
	pdf.Ln(8)
	if len(t.Summary.Highlights) > 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, tr("Highlights: "+strings.Join(t.Summary.Highlights, ", ")), "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildItineraryICS emits one all-day event per itinerary day.
func buildItineraryICS(t models.Trip, now time.Time) []byte {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//tripplanner//itinerary//EN")
	cal.SetXWRCalName("Trip to " + t.Destination)

	for _, day := range t.Itinerary {
		date := utils.DayDate(t.StartDate, day.Day)
		event := cal.AddEvent(fmt.Sprintf("trip-%d-day-%d@tripplanner", t.ID, day.Day))
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(date)
		event.SetAllDayEndAt(date.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("%s: day %d", t.Destination, day.Day))
		event.SetLocation(t.Destination)

		names := lo.Map(day.Places, func(p models.Place, _ int) string { return p.Name })
		desc := "Places: " + orDash(strings.Join(names, ", "))
		desc += "\nEstimated cost: " + utils.FormatMoney(day.TotalDayCost.Value, t.Budget.Currency)
		event.SetDescription(desc)
	}
	return []byte(cal.Serialize())
}

type costRow struct {
	Day      int    `csv:"day"`
	Date     string `csv:"date"`
	Kind     string `csv:"kind"`
	Item     string `csv:"item"`
	Category string `csv:"category"`
	Cost     int64  `csv:"cost"`
	Currency string `csv:"currency"`
}

// buildCostCSV lists every cost item of every day. Rows of kind "total"
// carry the recomputed day totals.
func buildCostCSV(t models.Trip) ([]byte, error) {
	rows := []costRow{}
	for _, day := range t.Itinerary {
		date := ""
		if !t.StartDate.IsZero() {
			date = utils.FormatDate(utils.DayDate(t.StartDate, day.Day))
		}
		row := func(kind, item, category string, cost int64) costRow {
			return costRow{Day: day.Day, Date: date, Kind: kind, Item: item, Category: category, Cost: cost, Currency: t.Budget.Currency}
		}
		for _, p := range day.Places {
			rows = append(rows, row("place", p.Name, string(p.Category), p.EstimatedCost.Value))
		}
		for _, m := range day.Meals {
			rows = append(rows, row("meal", m.Suggestion, string(m.Type), m.EstimatedCost.Value))
		}
		rows = append(rows, row("transportation", day.Transportation.Mode, "", day.Transportation.EstimatedCost.Value))
		if a := day.Accommodation; a != nil {
			rows = append(rows, row("accommodation", a.Name, a.Type, a.EstimatedCost.Value))
		}
		rows = append(rows, row("total", "", "", day.TotalDayCost.Value))
	}
	return csvutil.Marshal(rows)
}

func exportFilename(t models.Trip, ext string) string {
	return fmt.Sprintf("TRIP_%d_%s.%s", t.ID, safeFilenamePart(t.Destination), ext)
}

func orDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", ",", "_")
	s = replacer.Replace(s)
	if r := []rune(s); len(r) > 40 {
		s = string(r[:40])
	}
	return s
}
