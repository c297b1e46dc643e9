package reports_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snehapatil02/campus-event-management-backend/internal/reports"
)

func sampleRoster() reports.ReportData {
	attendedAt := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	return reports.ReportData{
		EventTitle: "Annual Tech Symposium",
		Roster: []reports.RosterReportRow{
			{
				RegistrationID: 1,
				UserName:       "Asha",
				UserEmail:      "asha@campus.edu",
				RegisteredAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
				Attended:       true,
				AttendedAt:     &attendedAt,
			},
			{
				RegistrationID: 2,
				UserName:       "Ravi",
				UserEmail:      "ravi@campus.edu",
				RegisteredAt:   time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestExportRosterCSV(t *testing.T) {
	exporter := reports.NewReportExporter()

	data, filename, contentType, err := exporter.Export(
		reports.ReportTypeRoster, reports.FormatCSV, sampleRoster())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "roster_report_"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))
	assert.Equal(t, "text/csv", contentType)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + two rows
	assert.Equal(t, []string{"Registration ID", "Name", "Email", "Registered At", "Attended", "Attended At"}, records[0])
	assert.Equal(t, "Asha", records[1][1])
	assert.Equal(t, "true", records[1][4])
	assert.Equal(t, "false", records[2][4])
	assert.Empty(t, records[2][5], "no attended-at for absentees")
}

func TestExportFeedbackCSV(t *testing.T) {
	exporter := reports.NewReportExporter()

	data, filename, contentType, err := exporter.Export(
		reports.ReportTypeFeedback, reports.FormatCSV, reports.ReportData{
			EventTitle:    "ML Workshop",
			AverageRating: 4.5,
			Feedback: []reports.FeedbackReportRow{
				{UserName: "Asha", Rating: 5, Comment: "loved it", CreatedAt: time.Now()},
				{UserName: "Ravi", Rating: 4, CreatedAt: time.Now()},
			},
		})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".csv"))
	assert.Equal(t, "text/csv", contentType)

	text := string(data)
	assert.Contains(t, text, "ML Workshop")
	assert.Contains(t, text, "4.50")
	assert.Contains(t, text, "loved it")
}

func TestExportBinaryFormats(t *testing.T) {
	exporter := reports.NewReportExporter()

	data, filename, contentType, err := exporter.Export(
		reports.ReportTypeRoster, reports.FormatExcel, sampleRoster())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)
	// xlsx files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])

	data, filename, contentType, err = exporter.Export(
		reports.ReportTypeRoster, reports.FormatPDF, sampleRoster())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportRejectsUnknownKinds(t *testing.T) {
	exporter := reports.NewReportExporter()

	_, _, _, err := exporter.Export("inventory", reports.FormatCSV, reports.ReportData{})
	assert.Error(t, err)

	_, _, _, err = exporter.Export(reports.ReportTypeRoster, "docx", reports.ReportData{})
	assert.Error(t, err)
}

// ===========================
// 📅 Date ranges

func TestGetDateRangePresets(t *testing.T) {
	start, end, err := reports.GetDateRange(reports.DateRangeDaily, "", "")
	require.NoError(t, err)
	assert.True(t, end.After(start))
	assert.InDelta(t, 24*time.Hour, end.Sub(start), float64(time.Minute))

	start, end, err = reports.GetDateRange(reports.DateRangeWeekly, "", "")
	require.NoError(t, err)
	assert.InDelta(t, 7*24*time.Hour, end.Sub(start), float64(time.Minute))

	// The term preset starts on an academic boundary (January, June
	// or August 1st) and runs up to today.
	start, end, err = reports.GetDateRange(reports.DateRangeSemester, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, start.Day())
	assert.Contains(t, []time.Month{time.January, time.June, time.August}, start.Month())
	assert.False(t, start.After(end))

	_, _, err = reports.GetDateRange("fortnightly", "", "")
	assert.Error(t, err)
}

func TestGetDateRangeCustom(t *testing.T) {
	start, end, err := reports.GetDateRange(reports.DateRangeCustom, "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, 2026, start.Year())
	assert.True(t, end.After(start))

	_, _, err = reports.GetDateRange(reports.DateRangeCustom, "", "")
	assert.Error(t, err)

	_, _, err = reports.GetDateRange(reports.DateRangeCustom, "01/01/2026", "31/01/2026")
	assert.Error(t, err)
}
