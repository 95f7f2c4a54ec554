// resultfmt renders analysis result payloads as JSON, terminal or Markdown
// output.
package main

import (
	"os"

	"github.com/bjaus/resultfmt/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
