// loadtest pings GET /status with growing numbers of simultaneous users and
// prints the average and worst response time of each round.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"aerocode/internal/client"
	"aerocode/internal/loadtest"
)

func main() {
	apiURL := flag.String("api", "http://127.0.0.1:3001", "base URL of the aerocode API")
	levels := flag.String("users", "1,5,10", "comma separated simultaneous user counts")
	pause := flag.Duration("pause", time.Second, "pause between rounds")
	timeout := flag.Duration("timeout", 10*time.Second, "timeout of each request")
	flag.Parse()

	rounds, err := parseLevels(*levels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -users: %v\n", err)
		os.Exit(2)
	}

	ctx := context.Background()
	api := client.NewAPI(*apiURL, &http.Client{Timeout: *timeout})

	fmt.Printf("Load test against %s\n", *apiURL)
	if err := api.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server not reachable: %v\n", err)
		os.Exit(1)
	}

	for i, users := range rounds {
		if i > 0 {
			time.Sleep(*pause)
		}
		res := loadtest.Run(ctx, api, users)

		fmt.Printf("\n--- %d simultaneous user(s) ---\n", users)
		if res.OK == 0 {
			fmt.Printf("all %d requests failed, first error: %v\n", users, res.Failed[0])
			continue
		}
		fmt.Printf("ok: %d/%d\n", res.OK, users)
		fmt.Printf("avg: %.2f ms\n", ms(res.Avg))
		fmt.Printf("max: %.2f ms\n", ms(res.Max))
		for _, err := range res.Failed {
			fmt.Printf("failed: %v\n", err)
		}
	}
}

func parseLevels(raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%q is not a positive number", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
