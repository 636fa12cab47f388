package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tripjournal/tripjournal-go/domain"
)

// FlattenTrips denormalizes trips into export rows: one row per event, trip
// fields repeated, and one event-less row for a trip with no events. Row
// order follows the input order.
func FlattenTrips(trips []domain.Trip) []domain.ExportRow {
	rows := make([]domain.ExportRow, 0, len(trips))
	for _, t := range trips {
		base := domain.ExportRow{
			TripID:        t.ID,
			TripName:      t.Name,
			TripStartDate: exportTime(t.StartDate),
			TripEndDate:   exportTime(t.EndDate),
		}

		if len(t.Events) == 0 {
			rows = append(rows, base)
			continue
		}

		for _, ev := range t.Events {
			row := base
			row.EventID = ev.ID
			row.EventName = ev.Name
			row.EventDate = exportTime(ev.Date)
			if ev.Note != nil {
				row.EventNote = *ev.Note
			}
			if ev.TransitionFromPrevious != nil {
				row.Transition = *ev.TransitionFromPrevious
			}
			for _, m := range ev.Medias {
				if m.URL != "" {
					row.MediaURLs = append(row.MediaURLs, m.URL)
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteCSV writes rows as CSV with a header line. Media URLs are joined
// with "," inside a single column.
func WriteCSV(w io.Writer, rows []domain.ExportRow) error {
	cw := csv.NewWriter(w)

	header := []string{
		"trip_id", "trip_name", "trip_start_date", "trip_end_date",
		"event_id", "event_name", "event_date", "event_note", "transition",
		"media_urls",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("journal.WriteCSV: %w", err)
	}

	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.TripID),
			r.TripName,
			r.TripStartDate,
			r.TripEndDate,
			exportID(r.EventID),
			r.EventName,
			r.EventDate,
			r.EventNote,
			r.Transition,
			strings.Join(r.MediaURLs, ","),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("journal.WriteCSV: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("journal.WriteCSV: %w", err)
	}
	return nil
}

func exportTime(t domain.WireTime) string {
	return t.UTC().Format(time.RFC3339)
}

// exportID renders an event id, leaving the column empty on the placeholder
// row of a trip without events.
func exportID(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}

