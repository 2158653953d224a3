// Command postview shows a list of posts fetched from an injected data source.
package main

import (
	"fmt"
	"os"

	"github.com/ka2n/postview/cli"
	"github.com/morikuni/failure/v2"
)

func main() {
	if err := cli.Run(); err != nil {
		var userMessage string
		if fmsg := failure.MessageOf(err); fmsg != "" {
			userMessage = fmsg.String()
		} else {
			userMessage = err.Error()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", userMessage)
		os.Exit(1)
	}
}
