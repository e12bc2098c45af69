package ledger

// Entry is exported so that other packages move it too.
//
//txflow:move
type Entry struct { // want Entry:"move-only"
	Account string
}

func Post(e Entry) {}
