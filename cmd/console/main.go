package main

import (
	"flag"
	"fmt"
	"os"

	"postboard/cmd/console/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	api := flag.String("api", "http://127.0.0.1:8000", "Base URL of the postboard API")
	flag.Parse()

	p := tea.NewProgram(ui.NewRootModel(*api), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "console: %v\n", err)
		os.Exit(1)
	}
}
