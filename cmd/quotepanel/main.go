// Command quotepanel serves the intraday quote panel on the web, in the terminal, or as a one-shot table.
package main

import (
	"context"
	"os"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
