// cmd/synrec/main.go
package main

import (
	"synrec/internal/appshell"
	"synrec/internal/recapp"
)

func main() {
	appshell.Main(recapp.RunContext)
}
