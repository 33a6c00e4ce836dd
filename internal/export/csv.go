package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/dnoice/workforce-tracker/internal/store"
)

// WriteTimesheetCSV writes one row per time entry. Worker ids are
// resolved through the lookup map; a deleted worker renders as
// "Unknown Worker" rather than failing the export.
func WriteTimesheetCSV(entries []store.TimeEntry, workers map[string]*store.Worker, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	// Header
	if err := cw.Write([]string{"Date", "Worker", "Hours", "Rate", "Earnings", "Description"}); err != nil {
		return err
	}

	for _, e := range entries {
		name := "Unknown Worker"
		if wk, ok := workers[e.WorkerID]; ok {
			name = wk.Name
		}
		row := []string{
			e.Date,
			name,
			fmt.Sprintf("%g", e.Hours),
			fmt.Sprintf("%.2f", e.Rate),
			fmt.Sprintf("%.2f", e.Earnings()),
			e.TaskDescription,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}

// TimesheetCSVToFile writes the timesheet to a file at path.
func TimesheetCSVToFile(entries []store.TimeEntry, workers map[string]*store.Worker, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()
	return WriteTimesheetCSV(entries, workers, f)
}

// WriteWorkersCSV writes one row per worker.
func WriteWorkersCSV(workers []store.Worker, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"Name", "Email", "Phone", "Rate", "Status", "Department", "Skills"}); err != nil {
		return err
	}

	for _, wk := range workers {
		row := []string{
			wk.Name,
			wk.Email,
			wk.Phone,
			fmt.Sprintf("%.2f", wk.Rate),
			wk.Status,
			wk.Department,
			wk.Skills,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}

// WorkersCSVToFile writes the worker roster to a file at path.
func WorkersCSVToFile(workers []store.Worker, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()
	return WriteWorkersCSV(workers, f)
}
