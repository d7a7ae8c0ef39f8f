// cmd/synrec-simulate/main.go
package main

import (
	"synrec/internal/appshell"
	"synrec/internal/simapp"
)

func main() {
	appshell.Main(simapp.RunContext)
}
