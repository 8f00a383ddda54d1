// Command deckctl renders and normalizes slide plans without the HTTP server.
//
//	deckctl render --plan plan.json --out out/ --preview previews/
//	deckctl normalize --plan - < plan.json
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
