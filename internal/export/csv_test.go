package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomraj007/txnportal/internal/domain/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTxn() report.Transaction {
	mgRef := "MG-001"
	return report.Transaction{
		ID:                 "t1",
		Status:             "COMPLETED",
		CreatedOn:          "2026-01-15 10:30:00",
		CreatedBy:          "agent.one",
		Principle:          "100.00",
		Service:            "SM",
		RefNum:             "REF-1001",
		Amount:             "100.00",
		SenderName:         "Jane Doe",
		ReceiverName:       "John Roe",
		AgentName:          "Downtown Agency",
		AgentID:            "AG-7",
		Location:           "Main Branch",
		LocationID:         "LOC-1",
		CustomerNumber:     "CUST-55",
		IDNumber:           "ID-9",
		DOB:                "1990-04-02",
		FirstName:          "Jane",
		LastName:           "Doe",
		Fee:                2.5,
		TotalPayableAmount: 102.5,
		Country:            "KE",
		IsAlert:            0,
		MGRefNum:           &mgRef,
		CountryRisk:        "Low",
		ProfRisk:           "Low",
	}
}

func TestWriteTransactions_HeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, []report.Transaction{sampleTxn()}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, headers, records[0])

	row := records[1]
	require.Len(t, row, len(headers))
	assert.Equal(t, "REF-1001", row[0])
	assert.Equal(t, "2.5", row[5])
	assert.Equal(t, "102.5", row[6])
	assert.Equal(t, "MG-001", row[20])
	assert.Equal(t, "No", row[23])
}

func TestWriteTransactions_Placeholders(t *testing.T) {
	txn := report.Transaction{RefNum: "REF-2", IsAlert: 1}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, []report.Transaction{txn}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	row := records[1]

	assert.Equal(t, "N/A", row[2], "nil service name renders as N/A")
	assert.Equal(t, "N/A", row[7], "empty sender renders as N/A")
	assert.Equal(t, "N/A", row[20], "nil MG ref renders as N/A")
	assert.Equal(t, "-", row[24], "empty suspicious note renders as a dash")
	assert.Equal(t, "Yes", row[23])
}

func TestWriteTransactions_QuotesSpecialCharacters(t *testing.T) {
	txn := sampleTxn()
	txn.SenderName = `Doe, Jane "JD"`

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, []report.Transaction{txn}))

	raw := buf.String()
	assert.Contains(t, raw, `"Doe, Jane ""JD"""`)

	// The quoted field must survive a round trip intact.
	records, err := csv.NewReader(strings.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, `Doe, Jane "JD"`, records[1][7])
}

func TestWriteTransactions_EmptyInputStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, headers, records[0])
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, ExportFile(path, []report.Transaction{sampleTxn()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
