package main

import "github.com/tscizzle/mlb-stats/internal/cli"

func main() {
	cli.Execute()
}
