// ABOUTME: PDF rendering for the day-off request form
// ABOUTME: Draws the printable blank HR expects, named after the tab number

package mailer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/2389/paperdesk/internal/store"
)

// RenderLeaveForm draws the day-off request form for one submission and
// returns the PDF bytes. The document layout follows the paper blank the
// HR department accepts: header with department routing, the request
// sentence with both dates, and a signature line.
func RenderLeaveForm(e *store.Employee, lr *store.LeaveRequest) ([]byte, error) {
	const dateLayout = "02.01.2006"

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Day-off request %d", e.TabNumber), false)
	pdf.AddPage()

	// Routing block, right-aligned like the paper original.
	pdf.SetFont("Helvetica", "", 11)
	routing := []string{
		fmt.Sprintf("Department: %s", e.Department),
		fmt.Sprintf("Subdivision: %s", e.SubDepartment),
		fmt.Sprintf("Position: %s", e.Position),
		fmt.Sprintf("Tab no: %d", e.TabNumber),
	}
	for _, line := range routing {
		pdf.CellFormat(0, 6, line, "", 1, "R", false, 0, "")
	}
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "DAY-OFF REQUEST", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	fullName := strings.TrimSpace(strings.Join([]string{e.SecondName, e.FirstName, e.ThirdName}, " "))

	pdf.SetFont("Helvetica", "", 12)
	body := fmt.Sprintf(
		"I, %s, request a paid day off on %s in exchange for the shift worked on %s.",
		fullName,
		lr.DayOff.Format(dateLayout),
		lr.ShiftWorked.Format(dateLayout),
	)
	pdf.MultiCell(0, 7, body, "", "L", false)
	pdf.Ln(14)

	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", lr.SubmissionDay.Format(dateLayout)), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Signature: __________________", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// AttachmentName is the PDF filename for a submission: the employee's
// tab number, matching how HR files the paper blanks.
func AttachmentName(e *store.Employee) string {
	return fmt.Sprintf("%d.pdf", e.TabNumber)
}
