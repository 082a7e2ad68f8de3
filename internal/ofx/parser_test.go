package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/aclindsa/ofxgo"

	"github.com/moneypal/moneypal/internal/model"
)

const testStatement = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>JAN01
<NAME>POS PURCHASE STARBUCKS
<MEMO>Morning coffee
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>1500.00
<FITID>JAN02
<NAME>PAYROLL DEPOSIT
</STMTTRN>
<STMTTRN>
<TRNTYPE>INT
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>2.15
<FITID>JAN03
<NAME>INTEREST PAYMENT
</STMTTRN>
<STMTTRN>
<TRNTYPE>FEE
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>-12.00
<FITID>JAN04
<NAME>MONTHLY SERVICE FEE
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	parser := NewParser()

	transactions, err := parser.ParseFile(context.Background(), strings.NewReader(testStatement))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(transactions) != 4 {
		t.Fatalf("parsed %d transactions, want 4", len(transactions))
	}

	byID := make(map[string]model.Transaction, len(transactions))
	for _, tx := range transactions {
		byID[tx.ID] = tx
	}

	debit := byID["ofx_JAN01"]
	if debit.Type != model.TypeExpense {
		t.Errorf("debit type = %q, want expense", debit.Type)
	}
	if debit.Amount != 25.50 {
		t.Errorf("debit amount = %v, want 25.50 (sign stripped)", debit.Amount)
	}
	if debit.Date != "2024-01-15" {
		t.Errorf("debit date = %q, want 2024-01-15", debit.Date)
	}
	if debit.Title != "STARBUCKS" {
		t.Errorf("debit title = %q, want prefix stripped", debit.Title)
	}
	if debit.Description != "Morning coffee" {
		t.Errorf("debit description = %q", debit.Description)
	}
	if debit.Category != model.FallbackExpenseID {
		t.Errorf("debit category = %q, want %q", debit.Category, model.FallbackExpenseID)
	}
	if debit.CreatedAt == "" {
		t.Error("debit CreatedAt must be set")
	}

	credit := byID["ofx_JAN02"]
	if credit.Type != model.TypeIncome {
		t.Errorf("credit type = %q, want income", credit.Type)
	}
	if credit.Amount != 1500.00 {
		t.Errorf("credit amount = %v, want 1500", credit.Amount)
	}
	if credit.Category != model.FallbackIncomeID {
		t.Errorf("credit category = %q, want %q", credit.Category, model.FallbackIncomeID)
	}

	// Interest lands in the investment category, service fees in bills.
	if byID["ofx_JAN03"].Category != "investment" {
		t.Errorf("interest category = %q, want investment", byID["ofx_JAN03"].Category)
	}
	if byID["ofx_JAN04"].Category != "bills" {
		t.Errorf("fee category = %q, want bills", byID["ofx_JAN04"].Category)
	}
}

func TestParseFile_NilContext(t *testing.T) {
	parser := NewParser()
	if _, err := parser.ParseFile(nil, strings.NewReader(testStatement)); err == nil { //nolint:staticcheck // testing nil context rejection
		t.Error("expected error for nil context")
	}
}

func TestParseFile_Garbage(t *testing.T) {
	parser := NewParser()
	if _, err := parser.ParseFile(context.Background(), strings.NewReader("not an ofx file")); err == nil {
		t.Error("expected error for invalid content")
	}
}

func TestPreprocessOFX(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "mixed-case severity",
			input: "<SEVERITY>Info</SEVERITY>",
			want:  "<SEVERITY>INFO</SEVERITY>",
		},
		{
			name:  "missing closing bracket",
			input: "<STMTTRN\n<TRNTYPE>DEBIT",
			want:  "<STMTTRN>\n<TRNTYPE>DEBIT",
		},
		{
			name:  "leading whitespace trimmed",
			input: "\n\n  OFXHEADER:100",
			want:  "OFXHEADER:100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parser.preprocessOFX(tt.input); got != tt.want {
				t.Errorf("preprocessOFX(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractTitle_StripsPrefixes(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		input string
		want  string
	}{
		{"POS PURCHASE TRADER JOES", "TRADER JOES"},
		{"DEBIT CARD PURCHASE AMAZON.COM", "AMAZON.COM"},
		{"CHECK CARD LOCAL DINER", "LOCAL DINER"},
		{"REGULAR MERCHANT", "REGULAR MERCHANT"},
		{"  AMAZON.COM  ", "AMAZON.COM"},
	}

	for _, tt := range tests {
		tx := ofxgo.Transaction{Name: ofxgo.String(tt.input)}
		if got := parser.extractTitle(tx); got != tt.want {
			t.Errorf("extractTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExtractTitle_PrefersPayee(t *testing.T) {
	parser := NewParser()

	tx := ofxgo.Transaction{
		Name:  ofxgo.String("POS PURCHASE SQ *COFFEE 12345"),
		Payee: &ofxgo.Payee{Name: ofxgo.String("Blue Bottle Coffee")},
	}
	if got := parser.extractTitle(tx); got != "Blue Bottle Coffee" {
		t.Errorf("extractTitle = %q, want payee name", got)
	}
}
