package main

import "github.com/agent-portal/portal/internal/cli"

func main() {
	cli.Execute()
}
