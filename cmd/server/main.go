// Package main is the entry point for the qa binary. Everything beyond
// dispatching to the command tree lives in internal/.
package main

import "github.com/sakif/qa-backend/cmd/server/commands"

func main() {
	commands.Execute()
}
