package fixed

import "fmt"

//txflow:move
type Record struct { // want Record:"move-only"
	ID     string
	Amount string
}

// Clone is the explicit duplication capability.
func (r Record) Clone() Record {
	return Record{ID: r.ID, Amount: r.Amount}
}

func persist(r *Record) { fmt.Println("persist", r.ID) }
func notify(r *Record)  { fmt.Println("notify", r.ID) }
func audit(r *Record)   { fmt.Println("audit", r.ID) }

// processBorrowed hands out read-only references and keeps ownership.
func processBorrowed(rec Record) {
	persist(&rec)
	notify(&rec)
	audit(&rec)
}

func persistOwned(r Record) { fmt.Println("persist", r.ID) }
func notifyOwned(r Record)  { fmt.Println("notify", r.ID) }
func auditOwned(r Record)   { fmt.Println("audit", r.ID) }

// processCloned gives each consumer its own duplicate.
func processCloned(rec Record) {
	persistOwned(rec.Clone())
	notifyOwned(rec.Clone())
	auditOwned(rec)
}

// Grouped declarations carry the directive on the spec itself.
type (
	//txflow:move
	Receipt struct{ ID string } // want Receipt:"move-only"

	Note struct{ Text string }
)

func processReceipt(r Receipt, n Note) {
	fmt.Println(r)
	fmt.Println(n)
	fmt.Println(n)
	fmt.Println(r) // want `use of transferred value "r"`
}
