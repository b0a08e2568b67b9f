package ingestion

import (
	"errors"
	"fmt"
	"strings"

	v1 "github.com/smottahedi/find-political-donors/internal/api/v1"
	coreerrors "github.com/smottahedi/find-political-donors/internal/core/errors"
	"github.com/smottahedi/find-political-donors/internal/schema"
)

// DefaultDelimiter separates the fields of an input line.
const DefaultDelimiter = "|"

// zipPrefixLength is how many leading zip code characters are kept.
const zipPrefixLength = 5

// SkipReason says why a line, or one grouping update of a line, was skipped.
type SkipReason string

const (
	SkipMalformed     SkipReason = "malformed"
	SkipInvalidAmount SkipReason = "invalid_amount"
	SkipInvalidZip    SkipReason = "invalid_zip"
	SkipInvalidDate   SkipReason = "invalid_date"
)

// SkipReasons lists every reason in reporting order.
var SkipReasons = []SkipReason{SkipMalformed, SkipInvalidAmount, SkipInvalidZip, SkipInvalidDate}

// ReasonOf maps an error to the skip reason of the sentinel it wraps.
func ReasonOf(err error) (SkipReason, bool) {
	switch {
	case errors.Is(err, coreerrors.ErrMalformedRecord):
		return SkipMalformed, true
	case errors.Is(err, coreerrors.ErrInvalidAmount):
		return SkipInvalidAmount, true
	case errors.Is(err, coreerrors.ErrInvalidZip):
		return SkipInvalidZip, true
	case errors.Is(err, coreerrors.ErrInvalidDate):
		return SkipInvalidDate, true
	}
	return "", false
}

// RecordError is returned for a line that cannot become a transaction.
type RecordError struct {
	Reason SkipReason
	Field  string // layout field at fault; empty for field count mismatches
	Line   int64
	Err    error
}

func (e *RecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: field %s: %v", e.Line, e.Field, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Parser turns raw delimited lines into transactions.
type Parser struct {
	layout    *schema.Layout
	delimiter string

	recipient int
	zip       int
	date      int
	amount    int
	otherID   int
}

func NewParser(layout *schema.Layout, delimiter string) *Parser {
	if layout == nil {
		panic("ingestion: layout must not be nil")
	}
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return &Parser{
		layout:    layout,
		delimiter: delimiter,
		recipient: layout.Index(schema.RoleRecipient),
		zip:       layout.Index(schema.RoleZip),
		date:      layout.Index(schema.RoleDate),
		amount:    layout.Index(schema.RoleAmount),
		otherID:   layout.Index(schema.RoleOtherID),
	}
}

// Parse validates one line and returns its transaction. Any failure is a
// *RecordError; no partial transaction is returned with it.
func (p *Parser) Parse(line string, lineNo int64) (v1.Transaction, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, p.delimiter)

	if len(fields) != p.layout.FieldCount() {
		return v1.Transaction{}, &RecordError{
			Reason: SkipMalformed,
			Line:   lineNo,
			Err:    fmt.Errorf("%w: %d fields, want %d", coreerrors.ErrMalformedRecord, len(fields), p.layout.FieldCount()),
		}
	}
	if fields[p.otherID] != "" {
		return v1.Transaction{}, p.malformed(schema.RoleOtherID, lineNo, "must be empty")
	}
	if fields[p.recipient] == "" {
		return v1.Transaction{}, p.malformed(schema.RoleRecipient, lineNo, "is empty")
	}
	if fields[p.amount] == "" {
		return v1.Transaction{}, p.malformed(schema.RoleAmount, lineNo, "is empty")
	}

	tx := v1.Transaction{
		RecipientID: fields[p.recipient],
		ZipPrefix:   prefix(fields[p.zip], zipPrefixLength),
		Date:        fields[p.date],
		AmountRaw:   fields[p.amount],
		Line:        lineNo,
	}
	amount, err := NormalizeAmount(tx.AmountRaw)
	if err != nil {
		return v1.Transaction{}, &RecordError{
			Reason: SkipInvalidAmount,
			Field:  p.layout.FieldName(schema.RoleAmount),
			Line:   lineNo,
			Err:    err,
		}
	}
	tx.Amount = amount
	return tx, nil
}

func (p *Parser) malformed(role schema.Role, lineNo int64, msg string) *RecordError {
	return &RecordError{
		Reason: SkipMalformed,
		Field:  p.layout.FieldName(role),
		Line:   lineNo,
		Err:    fmt.Errorf("%w: %s %s", coreerrors.ErrMalformedRecord, role, msg),
	}
}

// prefix returns the first n runes of s, or s if it is shorter.
func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
