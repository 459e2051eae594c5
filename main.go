// Command crawlsearch is a concurrent web crawler, indexing engine, and
// tf-idf search engine over the pages it crawls.
package main

import (
	"fmt"
	"os"

	"github.com/jonesrussell/crawlsearch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
