package v1

// Transaction is one accepted contribution line. It lives only for the time
// it takes to route it into the aggregates.
type Transaction struct {
	// RecipientID is the CMTE_ID of the committee receiving the contribution.
	RecipientID string `json:"recipient_id"`

	// ZipPrefix holds at most the first five characters of the contributor zip code.
	// Shorter values are kept as-is; the zip grouping rejects them.
	ZipPrefix string `json:"zip_prefix"`

	// Date is the raw TRANSACTION_DT value, expected as MMDDYYYY.
	Date string `json:"date"`

	// AmountRaw is the raw TRANSACTION_AMT text.
	AmountRaw string `json:"amount_raw"`

	// Amount is AmountRaw after normalization (fraction truncated).
	Amount int64 `json:"amount"`

	// Line is the 1-based input line number.
	Line int64 `json:"line"`
}
