package trading

import (
	"fmt"
	"time"
)

// TransactionRecord is a transfer between two accounts.
//
//txflow:move
type TransactionRecord struct { // want TransactionRecord:"move-only"
	ID          string
	Amount      string
	Timestamp   time.Time
	FromAccount string
	ToAccount   string
}

// Quote has no directive and may be copied freely.
type Quote struct{ Price string }

func saveToDatabase(record TransactionRecord) {
	fmt.Printf("Saving to DB: %+v\n", record)
}

func sendNotification(record TransactionRecord) {
	fmt.Printf("Sending notification for: %+v\n", record)
}

func writeAuditLog(record TransactionRecord) {
	fmt.Printf("Audit log: %+v\n", record)
}

func processTransaction(record TransactionRecord) {
	saveToDatabase(record)
	sendNotification(record) // want `use of transferred value "record" \(ownership transferred at line 35\)`
	writeAuditLog(record)    // want `use of transferred value "record" \(ownership transferred at line 35\)`
}

func readAfterMove(record TransactionRecord) string {
	saveToDatabase(record)
	return record.ID // want `use of transferred value "record"`
}

func exclusiveBranches(record TransactionRecord, fast bool) {
	if fast {
		saveToDatabase(record)
	} else {
		sendNotification(record)
	}
}

func maybeMoved(record TransactionRecord, fast bool) {
	if fast {
		saveToDatabase(record)
	}
	writeAuditLog(record) // want `use of transferred value "record"`
}

func loop(record TransactionRecord, sinks []func(TransactionRecord)) {
	for _, sink := range sinks {
		sink(record) // want `use of transferred value "record"`
	}
}

func freshPerIteration(records []TransactionRecord) {
	for _, record := range records {
		saveToDatabase(record)
	}
}

func reassigned(record TransactionRecord) {
	saveToDatabase(record)
	record = TransactionRecord{ID: "TX-2024-002"}
	sendNotification(record)
}

func assignMoves(record TransactionRecord) {
	copied := record
	writeAuditLog(record) // want `use of transferred value "record"`
	saveToDatabase(copied)
}

func closure(record TransactionRecord) func() string {
	saveToDatabase(record)
	return func() string { return record.ID } // want `use of transferred value "record"`
}

func inspect(r *TransactionRecord) string { return r.ID }

func borrowed(record TransactionRecord) {
	inspect(&record)
	inspect(&record)
	saveToDatabase(record)
}

func deferred(record TransactionRecord) {
	defer writeAuditLog(record)
	saveToDatabase(record) // want `use of transferred value "record"`
}

func pair(a, b TransactionRecord) {}

func twiceInOneCall(record TransactionRecord) {
	pair(record, record) // want `use of transferred value "record"`
}

func composite(record TransactionRecord) []TransactionRecord {
	batch := []TransactionRecord{record}
	saveToDatabase(record) // want `use of transferred value "record"`
	return batch
}

func send(record TransactionRecord, ch chan<- TransactionRecord) {
	ch <- record
	saveToDatabase(record) // want `use of transferred value "record"`
}

func show(q Quote) {}

func copyable(q Quote) {
	show(q)
	show(q)
}

func main() {
	tx := TransactionRecord{
		ID:          "TX-2024-001",
		Amount:      "1000.50",
		Timestamp:   time.Now(),
		FromAccount: "ACC-001",
		ToAccount:   "ACC-002",
	}
	processTransaction(tx)
}

func bareReturnAfterMove(in TransactionRecord) (out TransactionRecord) {
	out = in
	saveToDatabase(out)
	return // want `use of transferred value "out"`
}

func bareReturnHandsOff(in TransactionRecord, ok bool) (out TransactionRecord, err error) {
	out = in
	if !ok {
		err = fmt.Errorf("rejected %s", out.ID)
	}
	return
}

func bareReturnAfterReassign(in TransactionRecord) (out TransactionRecord) {
	out = in
	saveToDatabase(out)
	out = TransactionRecord{ID: "TX-2024-003"}
	return
}
