package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportExporter renders report data in the requested download format
type ReportExporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

// Export returns the file bytes, filename and content type
func (e *reportExporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeRoster:
		return e.exportRosterByFormat(format, timestamp, data)
	case ReportTypeFeedback:
		return e.exportFeedbackByFormat(format, timestamp, data)
	case ReportTypeAuditLogs:
		return e.exportAuditLogsByFormat(format, timestamp, data.AuditLogs)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

//// ============================
/// ROSTER EXPORTS
//// ============================

func (e *reportExporter) exportRosterByFormat(format, timestamp string, data ReportData) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		bytes, err := e.exportRosterExcel(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("roster_report_%s.xlsx", timestamp)
		return bytes, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		bytes, err := e.exportRosterCSV(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("roster_report_%s.csv", timestamp)
		return bytes, filename, "text/csv", nil

	case FormatPDF:
		bytes, err := e.exportRosterPDF(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("roster_report_%s.pdf", timestamp)
		return bytes, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for roster: %s", format)
	}
}

func (e *reportExporter) exportRosterCSV(data ReportData) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Registration ID", "Name", "Email", "Registered At", "Attended", "Attended At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, row := range data.Roster {
		attendedAt := ""
		if row.AttendedAt != nil {
			attendedAt = row.AttendedAt.Format("2006-01-02 15:04:05")
		}
		record := []string{
			strconv.FormatUint(uint64(row.RegistrationID), 10),
			row.UserName,
			row.UserEmail,
			row.RegisteredAt.Format("2006-01-02 15:04:05"),
			strconv.FormatBool(row.Attended),
			attendedAt,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportRosterExcel(data ReportData) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Roster"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Registration ID", "Name", "Email", "Registered At", "Attended", "Attended At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, row := range data.Roster {
		rowNum := rIdx + 2
		attendedAt := ""
		if row.AttendedAt != nil {
			attendedAt = row.AttendedAt.Format("2006-01-02 15:04:05")
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), row.RegistrationID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), row.UserName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), row.UserEmail)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), row.RegisteredAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), row.Attended)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), attendedAt)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportRosterPDF(data ReportData) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Attendance Sheet: "+data.EventTitle)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"ID", "Name", "Email", "Registered At", "Attended", "Attended At"}
	widths := []float64{15, 60, 70, 45, 25, 45}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Roster {
		attendedAt := ""
		if row.AttendedAt != nil {
			attendedAt = row.AttendedAt.Format("2006-01-02 15:04:05")
		}
		pdf.CellFormat(widths[0], 6, fmt.Sprint(row.RegistrationID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, row.UserName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, row.UserEmail, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, row.RegisteredAt.Format("2006-01-02 15:04:05"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, strconv.FormatBool(row.Attended), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, attendedAt, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

//// ============================
/// FEEDBACK EXPORTS
//// ============================

func (e *reportExporter) exportFeedbackByFormat(format, timestamp string, data ReportData) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		bytes, err := e.exportFeedbackExcel(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("feedback_report_%s.xlsx", timestamp)
		return bytes, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		bytes, err := e.exportFeedbackCSV(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("feedback_report_%s.csv", timestamp)
		return bytes, filename, "text/csv", nil

	case FormatPDF:
		bytes, err := e.exportFeedbackPDF(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("feedback_report_%s.pdf", timestamp)
		return bytes, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for feedback: %s", format)
	}
}

func (e *reportExporter) exportFeedbackCSV(data ReportData) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Event", data.EventTitle}); err != nil {
		return nil, err
	}
	if err := writer.Write([]string{"Average Rating", fmt.Sprintf("%.2f", data.AverageRating)}); err != nil {
		return nil, err
	}
	if err := writer.Write([]string{}); err != nil {
		return nil, err
	}

	headers := []string{"Name", "Rating", "Comment", "Submitted At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, row := range data.Feedback {
		record := []string{
			row.UserName,
			strconv.Itoa(row.Rating),
			row.Comment,
			row.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportFeedbackExcel(data ReportData) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Feedback"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	f.SetCellValue(sheet, "A1", "Event")
	f.SetCellValue(sheet, "B1", data.EventTitle)
	f.SetCellValue(sheet, "A2", "Average Rating")
	f.SetCellValue(sheet, "B2", data.AverageRating)

	headers := []string{"Name", "Rating", "Comment", "Submitted At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 4)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, row := range data.Feedback {
		rowNum := rIdx + 5
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), row.UserName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), row.Rating)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), row.Comment)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), row.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportFeedbackPDF(data ReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Feedback Summary: "+data.EventTitle)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 8, fmt.Sprintf("Average Rating: %.2f / 5", data.AverageRating))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"Name", "Rating", "Comment", "Submitted At"}
	widths := []float64{45, 15, 85, 45}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Feedback {
		pdf.CellFormat(widths[0], 6, row.UserName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, strconv.Itoa(row.Rating), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, row.Comment, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, row.CreatedAt.Format("2006-01-02 15:04:05"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

//// ============================
/// AUDIT LOG EXPORTS
//// ============================

func (e *reportExporter) exportAuditLogsByFormat(format, timestamp string, logs []AuditLogReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		bytes, err := e.exportAuditLogsExcel(logs)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("audit_logs_report_%s.xlsx", timestamp)
		return bytes, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		bytes, err := e.exportAuditLogsCSV(logs)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("audit_logs_report_%s.csv", timestamp)
		return bytes, filename, "text/csv", nil

	case FormatPDF:
		bytes, err := e.exportAuditLogsPDF(logs)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("audit_logs_report_%s.pdf", timestamp)
		return bytes, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for audit logs: %s", format)
	}
}

func (e *reportExporter) exportAuditLogsCSV(logs []AuditLogReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "User ID", "Event ID", "Action", "Status", "IP Address", "Timestamp", "Details"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, log := range logs {
		userID := ""
		if log.UserID != nil {
			userID = strconv.FormatUint(uint64(*log.UserID), 10)
		}
		eventID := ""
		if log.EventID != nil {
			eventID = strconv.FormatUint(uint64(*log.EventID), 10)
		}

		record := []string{
			strconv.FormatUint(uint64(log.ID), 10),
			userID,
			eventID,
			log.Action,
			log.Status,
			log.IPAddress,
			log.CreatedAt.Format("2006-01-02 15:04:05"),
			log.Details,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportAuditLogsExcel(logs []AuditLogReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Audit Logs"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "User ID", "Event ID", "Action", "Status", "IP Address", "Timestamp", "Details"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, log := range logs {
		rowNum := rIdx + 2
		userID := ""
		if log.UserID != nil {
			userID = strconv.FormatUint(uint64(*log.UserID), 10)
		}
		eventID := ""
		if log.EventID != nil {
			eventID = strconv.FormatUint(uint64(*log.EventID), 10)
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), log.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), userID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), eventID)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), log.Action)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), log.Status)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), log.IPAddress)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), log.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", rowNum), log.Details)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportAuditLogsPDF(logs []AuditLogReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Audit Log Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"ID", "User", "Event", "Action", "Status", "IP", "Timestamp"}
	widths := []float64{15, 15, 15, 65, 22, 35, 45}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, log := range logs {
		userID := ""
		if log.UserID != nil {
			userID = strconv.FormatUint(uint64(*log.UserID), 10)
		}
		eventID := ""
		if log.EventID != nil {
			eventID = strconv.FormatUint(uint64(*log.EventID), 10)
		}
		pdf.CellFormat(widths[0], 6, fmt.Sprint(log.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, userID, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, eventID, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, log.Action, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, log.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, log.IPAddress, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, log.CreatedAt.Format("2006-01-02 15:04:05"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
