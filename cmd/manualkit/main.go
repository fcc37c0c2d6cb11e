package main

import "codeberg.org/adtmanual/manualkit/internal/cli"

func main() {
	cli.Execute()
}
