// Package audit records every accepted classification decision so the
// catalog and model can be reviewed against human corrections later.
package audit

import "time"

// Event is a single recorded classification decision.
type Event struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	DocumentName  string    `json:"document_name"`
	AutomaticCode string    `json:"automatic_code"`
	FinalCode     string    `json:"final_code"`
	Overridden    bool      `json:"overridden"`
	Scores        []Score   `json:"scores"`
}

// Score mirrors one ranked catalog entry at decision time.
type Score struct {
	Code  string  `json:"code"`
	Value float32 `json:"score"`
}
