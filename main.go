package main

import "github.com/harrisonrobin/worklog/cmd"

// version is set at build time via -ldflags
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
