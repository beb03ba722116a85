// Package export renders fetched report rows as a downloadable CSV file.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tomraj007/txnportal/internal/domain/report"
)

// Column order matches the on-screen report table.
var headers = []string{
	"Reference Number", "Service", "Service Name", "Status", "Amount", "Fee",
	"Total Payable", "Sender", "Receiver", "First Name", "Last Name",
	"Customer Number", "DOB", "ID Number", "Agent Name", "Agent ID",
	"Location", "Location ID", "Country", "Principle", "MG Ref Num",
	"Profile Risk", "Country Risk", "Is Alert", "Suspicious Note",
	"Created By", "Created On",
}

// WriteTransactions writes the rows as RFC 4180 CSV: fields containing a
// comma or double quote are wrapped in quotes with inner quotes doubled.
func WriteTransactions(w io.Writer, txns []report.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range txns {
		row := []string{
			t.RefNum,
			t.Service,
			orNA(deref(t.ServiceName)),
			t.Status,
			t.Amount,
			strconv.FormatFloat(t.Fee, 'f', -1, 64),
			strconv.FormatFloat(t.TotalPayableAmount, 'f', -1, 64),
			orNA(t.SenderName),
			orNA(t.ReceiverName),
			orNA(t.FirstName),
			orNA(t.LastName),
			orNA(t.CustomerNumber),
			t.DOB,
			orNA(t.IDNumber),
			orNA(t.AgentName),
			orNA(t.AgentID),
			t.Location,
			orNA(t.LocationID),
			t.Country,
			t.Principle,
			orNA(deref(t.MGRefNum)),
			t.ProfRisk,
			t.CountryRisk,
			yesNo(t.IsAlert != 0),
			orDash(deref(t.SuspiciousNote)),
			orNA(t.CreatedBy),
			t.CreatedOn,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFile writes the rows to a new file at path.
func ExportFile(path string, txns []report.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := WriteTransactions(f, txns); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
