package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jszwec/csvutil"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
)

func exportTrip() models.Trip {
	t := storedTrip(3, 7)
	t.Destination = "Kochi, Kerala"
	t.Itinerary = []models.DayPlan{
		{
			Day:            1,
			Places:         []models.Place{{Name: "Fort Kochi", Category: models.CategoryAttraction, EstimatedCost: models.NewAmount(150)}},
			Meals:          []models.Meal{{Type: models.MealDinner, Suggestion: "Karimeen", EstimatedCost: models.NewAmount(600)}},
			Transportation: models.Transportation{Mode: "ferry", EstimatedCost: models.NewAmount(50)},
			TotalDayCost:   models.NewAmount(1),
		},
		{
			Day:           2,
			Accommodation: &models.Accommodation{Name: "Houseboat", Type: "boat", EstimatedCost: models.NewAmount(7000)},
		},
	}
	return t
}

func TestExportCSVUsesRecomputedTotals(t *testing.T) {
	svc := ExportService{Trips: newFakeTrips(exportTrip())}
	doc, err := svc.CSV(7, 3)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if doc.Filename != "TRIP_3_Kochi__Kerala.csv" {
		t.Fatalf("filename got %q", doc.Filename)
	}

	var rows []costRow
	if err := csvutil.Unmarshal(doc.Body, &rows); err != nil {
		t.Fatalf("csv not readable: %v", err)
	}
	var dayOneTotal int64 = -1
	for _, r := range rows {
		if r.Kind == "total" && r.Day == 1 {
			dayOneTotal = r.Cost
		}
	}
	if dayOneTotal != 800 {
		t.Fatalf("day 1 total got %d", dayOneTotal)
	}
	if rows[0].Date != "2025-03-01" || rows[0].Currency != "INR" {
		t.Fatalf("first row got %+v", rows[0])
	}
}

func TestExportICSOneEventPerDay(t *testing.T) {
	body := buildItineraryICS(exportTrip(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	s := string(body)
	if strings.Count(s, "BEGIN:VEVENT") != 2 {
		t.Fatalf("expected 2 events:\n%s", s)
	}
	if !strings.Contains(s, "20250302") {
		t.Fatalf("day 2 date missing:\n%s", s)
	}
}

func TestExportPDF(t *testing.T) {
	svc := ExportService{Trips: newFakeTrips(exportTrip())}
	doc, err := svc.PDF(7, 3)
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(doc.Body, []byte("%PDF")) || doc.ContentType != "application/pdf" {
		t.Fatalf("not a pdf document")
	}
}

func TestExportOwnership(t *testing.T) {
	svc := ExportService{Trips: newFakeTrips(exportTrip())}
	if _, err := svc.ICS(8, 3); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
