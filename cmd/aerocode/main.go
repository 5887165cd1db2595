// aerocode is the terminal front end. It talks to the API started by
// cmd/server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"aerocode/internal/client"
	"aerocode/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	defaultAPI := os.Getenv("AEROCODE_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:3001"
	}
	apiURL := flag.String("api", defaultAPI, "base URL of the aerocode API")
	timeout := flag.Duration("timeout", 10*time.Second, "timeout of each API request")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := client.NewAPI(*apiURL, &http.Client{Timeout: *timeout})
	if err := api.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "API unreachable at %s: %v\n", *apiURL, err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewApp(ctx, client.NewStore(api)),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
