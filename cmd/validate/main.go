// Command validate runs the change-detection filter and report parser over
// a saved feed body without touching Kafka. Useful for checking a feed dump
// against the current pattern after a provider format change.
//
// Usage:
//
//	go run ./cmd/validate -feed-file data/reports.txt [-show 5]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/spotter-report-loader/internal/domain"
	"github.com/couchcryptid/spotter-report-loader/internal/feed"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	feedFile := flag.String("feed-file", "", "path to a saved feed body")
	show := flag.Int("show", 3, "number of parsed events to print as JSON")
	flag.Parse()

	if *feedFile == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -feed-file")
	}

	body, err := os.ReadFile(*feedFile)
	if err != nil {
		return fmt.Errorf("read feed file: %w", err)
	}

	latest, fresh := feed.DetectNew(string(body), nil)
	fmt.Printf("report lines: %d distinct after normalization\n", len(latest))

	parser := domain.NewParser()

	var events, suppressed, malformed int
	for _, line := range fresh {
		event, err := parser.Parse(line)
		switch {
		case err != nil:
			malformed++
			fmt.Fprintf(os.Stderr, "malformed: %v\n    %s\n", err, line)
		case event == nil:
			suppressed++
		default:
			events++
			if events <= *show {
				data, err := json.MarshalIndent(event, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal event: %w", err)
				}
				fmt.Println(string(data))
			}
		}
	}

	fmt.Printf("events: %d, suppressed: %d, malformed: %d\n", events, suppressed, malformed)

	if malformed > 0 {
		return fmt.Errorf("%d report lines failed to parse", malformed)
	}
	return nil
}
