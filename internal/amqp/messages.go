package amqp

import (
	"encoding/json"
	"time"
)

type EventKind string

const (
	// KindExpenseRecorded announces one newly persisted expense. The
	// event carries only the record ID; consumers fetch the full record
	// from storage.
	KindExpenseRecorded EventKind = "expense.recorded"
	// KindDateCleared announces a date-scoped delete.
	KindDateCleared EventKind = "date.cleared"
)

// LedgerEvent is the wire envelope for ledger change notifications.
type LedgerEvent struct {
	Kind      EventKind `json:"kind"`
	ID        int64     `json:"id,omitempty"`
	Date      string    `json:"date,omitempty"`
	Count     int64     `json:"count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseRecordedEvent(id int64) *LedgerEvent {
	return &LedgerEvent{Kind: KindExpenseRecorded, ID: id, Timestamp: time.Now()}
}

func NewDateClearedEvent(date string, count int64) *LedgerEvent {
	return &LedgerEvent{Kind: KindDateCleared, Date: date, Count: count, Timestamp: time.Now()}
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var ev LedgerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
