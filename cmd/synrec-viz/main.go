// cmd/synrec-viz/main.go
package main

import (
	"synrec/internal/appshell"
	"synrec/internal/vizapp"
)

func main() {
	appshell.Main(vizapp.RunContext)
}
