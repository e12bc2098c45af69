package ledgeruse

import "ledger"

func postTwice(e ledger.Entry) {
	ledger.Post(e)
	ledger.Post(e) // want `use of transferred value "e"`
}

func postOnce(e ledger.Entry) {
	_ = e.Account
	ledger.Post(e)
}
