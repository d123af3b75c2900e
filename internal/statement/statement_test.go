package statement

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectBank(t *testing.T) {
	assert.Equal(t, BankChase, DetectBank("Chase1234_Activity.CSV"))
	assert.Equal(t, BankTruist, DetectBank("truist_statement_march.csv"))
	assert.Equal(t, BankWellsFargo, DetectBank("checking.csv"))
	assert.Equal(t, BankWellsFargo, DetectBank(""))
}

func TestParse_WellsFargoHeaderless(t *testing.T) {
	csvData := `"03/12/2025","-45.67","*","","STARBUCKS STORE 0412 SEATTLE WA"
"03/13/2025","1500.00","*","","DIRECT DEPOSIT EMPLOYER PAYROLL"`

	txns, err := Parse(strings.NewReader(csvData), BankWellsFargo, "upload-1")
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, "row:1", txns[0].ID)
	assert.Equal(t, int64(-4567), txns[0].Amount)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), txns[0].Date)
	assert.Equal(t, "STARBUCKS STORE 0412 SEATTLE WA", txns[0].DescriptionRaw)
	assert.Equal(t, "starbucks store 0412 seattle wa", txns[0].Description)
	assert.Equal(t, "wells-fargo", txns[0].SourceName)
	assert.Equal(t, "upload-1", txns[0].SourceUploadID)
	assert.Equal(t, "USD", txns[0].Currency)
	assert.True(t, txns[0].IsSpending())

	assert.Equal(t, "row:2", txns[1].ID)
	assert.Equal(t, int64(150000), txns[1].Amount)
	assert.True(t, txns[1].IsIncome())
}

func TestParse_ChaseHeadered(t *testing.T) {
	csvData := `Transaction Date,Posted Date,Description,Amount,Type,Balance
2025-03-12,2025-03-13,NETFLIX.COM,-15.49,DEBIT,"1,234.56"
2025-03-14,,PAYROLL,2000.00,CREDIT,3219.07`

	txns, err := Parse(strings.NewReader(csvData), BankChase, "upload-2")
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, int64(-1549), txns[0].Amount)
	assert.Equal(t, "DEBIT", txns[0].TxnType)
	require.NotNil(t, txns[0].PostedDate)
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), *txns[0].PostedDate)
	require.NotNil(t, txns[0].Balance)
	assert.Equal(t, int64(123456), *txns[0].Balance)

	assert.Nil(t, txns[1].PostedDate)
	assert.Equal(t, int64(200000), txns[1].Amount)
}

func TestParse_DebitCreditColumns(t *testing.T) {
	csvData := `Date,Description,Debit,Credit
01/05/2025,GROCERY OUTLET,23.10,
01/06/2025,REFUND,,8.99`

	txns, err := Parse(strings.NewReader(csvData), BankTruist, "upload-3")
	require.NoError(t, err)
	require.Len(t, txns, 2)

	// Debit columns are outflows even when the bank reports them positive.
	assert.Equal(t, int64(-2310), txns[0].Amount)
	assert.Equal(t, int64(899), txns[1].Amount)
}

func TestParse_SkipsUnparseableRows(t *testing.T) {
	csvData := `Date,Description,Amount
01/05/2025,GROCERY,12.00
not-a-date,NO AMOUNT,
01/06/2025,COFFEE,4.50`

	txns, err := Parse(strings.NewReader(csvData), BankChase, "u")
	require.NoError(t, err)
	require.Len(t, txns, 2)
	// Row numbering counts skipped rows so re-imports stay stable.
	assert.Equal(t, "row:1", txns[0].ID)
	assert.Equal(t, "row:3", txns[1].ID)
}

func TestParse_Empty(t *testing.T) {
	txns, err := Parse(strings.NewReader(""), BankChase, "u")
	assert.NoError(t, err)
	assert.Empty(t, txns)

	txns, err = Parse(strings.NewReader(""), BankWellsFargo, "u")
	assert.NoError(t, err)
	assert.Empty(t, txns)
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"-45.67", -4567, true},
		{"$1,234.56", 123456, true},
		{"(12.00)", -1200, true},
		{"0.005", 1, true},
		{"-0.005", -1, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseCents(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
