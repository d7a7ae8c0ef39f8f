// cmd/synrec-erase/main.go
package main

import (
	"synrec/internal/appshell"
	"synrec/internal/eraseapp"
)

func main() {
	appshell.Main(eraseapp.RunContext)
}
