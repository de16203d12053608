// Package main is the entrypoint for the showroom CLI: the admin dashboard
// and the public site client.
package main

import (
	"os"

	"github.com/voltrak-labs/showroom/internal/cli"
)

var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	os.Exit(cli.New().Execute())
}
