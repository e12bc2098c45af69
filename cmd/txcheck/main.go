// Command txcheck reports uses of move-only values after ownership transfer.
//
//	txcheck ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"txhandoff/internal/analysis/movecheck"
)

func main() { singlechecker.Main(movecheck.Analyzer) }
