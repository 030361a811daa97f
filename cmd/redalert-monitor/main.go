package main

import "github.com/idanlevi/redalert-monitor/cmd/redalert-monitor/cmd"

func main() {
	cmd.Execute()
}
