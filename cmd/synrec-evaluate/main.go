// cmd/synrec-evaluate/main.go
package main

import (
	"synrec/internal/appshell"
	"synrec/internal/evalapp"
)

func main() {
	appshell.Main(evalapp.RunContext)
}
