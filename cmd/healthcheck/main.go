package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/usagi-tienda/storefront-go/internal/logging"
	"github.com/usagi-tienda/storefront-go/pkg/storefront"
)

// CheckConfig holds configuration for the health check
type CheckConfig struct {
	EnvFile   string
	BaseURL   string
	Token     string
	OutputDir string
	Timeout   time.Duration
	Verbose   bool
	Dump      bool
	Families  []storefront.Family
}

// CheckReport is the full health check report
type CheckReport struct {
	Timestamp   time.Time                  `json:"timestamp"`
	BaseURL     string                     `json:"base_url"`
	Total       int                        `json:"total"`
	Available   int                        `json:"available"`
	Missing     int                        `json:"missing"`
	SuccessRate float64                    `json:"success_rate"`
	Results     []storefront.EndpointCheck `json:"results"`
}

func main() {
	config := parseFlags()

	level := "info"
	if config.Verbose {
		level = "debug"
	}
	logger := logging.New(level, os.Stderr)

	cfg := storefront.LoadConfig(envFiles(config.EnvFile)...)
	if config.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}
	// Checks never touch durable state
	cfg.Store = "memory"
	cfg.FirestoreProject = ""

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	client, err := storefront.NewClientFromConfig(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	if config.Token != "" {
		if err := client.SetToken(ctx, config.Token); err != nil {
			log.Fatalf("Failed to set token: %v", err)
		}
	}

	report := buildReport(client.BaseURL(), client.CheckEndpoints(ctx, config.Families...), time.Now())

	if config.Dump {
		spew.Fdump(os.Stdout, report)
	}

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
		reportPath := filepath.Join(config.OutputDir, fmt.Sprintf("healthcheck_%d.json", report.Timestamp.Unix()))
		if err := saveReport(report, reportPath); err != nil {
			log.Fatalf("Failed to save report: %v", err)
		}
		logger.Info("Report saved", "path", reportPath)
	}

	printSummary(os.Stdout, report)

	// Exit with non-zero if any family is missing
	if report.Missing > 0 {
		os.Exit(1)
	}
}

func parseFlags() *CheckConfig {
	config := &CheckConfig{}

	flag.StringVar(&config.EnvFile, "env", "", "Path to a .env file (default: ./.env)")
	flag.StringVar(&config.BaseURL, "base-url", "", "Override STOREFRONT_API_BASE_URL")
	flag.StringVar(&config.Token, "token", os.Getenv("STOREFRONT_TOKEN"), "Bearer token sent with every check")
	flag.StringVar(&config.OutputDir, "output", "", "Directory to write a JSON report to")
	flag.DurationVar(&config.Timeout, "timeout", 30*time.Second, "Overall time limit")
	flag.BoolVar(&config.Verbose, "verbose", false, "Verbose output")
	flag.BoolVar(&config.Dump, "dump", false, "Dump the full report structure")

	// Parse family list
	familyList := flag.String("families", "", "Comma-separated list of endpoint families to check (empty for all)")

	flag.Parse()

	config.Families = parseFamilies(*familyList)
	return config
}

func envFiles(path string) []string {
	if path == "" {
		return nil
	}
	return []string{path}
}

func parseFamilies(list string) []storefront.Family {
	var families []storefront.Family
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			families = append(families, storefront.Family(name))
		}
	}
	return families
}

func buildReport(baseURL string, results []storefront.EndpointCheck, now time.Time) *CheckReport {
	report := &CheckReport{
		Timestamp: now,
		BaseURL:   baseURL,
		Results:   results,
	}

	for _, r := range results {
		if r.Available {
			report.Available++
		} else {
			report.Missing++
		}
	}

	report.Total = len(results)
	if report.Total > 0 {
		report.SuccessRate = float64(report.Available) / float64(report.Total) * 100
	}
	return report
}

func saveReport(report *CheckReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func printSummary(w io.Writer, report *CheckReport) {
	fmt.Fprintln(w, "\n=== Endpoint Report ===")
	fmt.Fprintf(w, "Backend: %s\n", report.BaseURL)
	fmt.Fprintf(w, "Families: %d\n", report.Total)
	fmt.Fprintf(w, "Available: %d\n", report.Available)
	fmt.Fprintf(w, "Missing: %d\n", report.Missing)
	fmt.Fprintf(w, "Success Rate: %.1f%%\n", report.SuccessRate)

	fmt.Fprintln(w, "\nResolved:")
	for _, r := range report.Results {
		if r.Available {
			fmt.Fprintf(w, "  - %s: %s\n", r.Family, r.Resolved)
		}
	}

	if report.Missing > 0 {
		fmt.Fprintln(w, "\nMissing:")
		for _, r := range report.Results {
			if r.Available {
				continue
			}
			last := ""
			if n := len(r.Tried); n > 0 {
				last = r.Tried[n-1].Error
			}
			fmt.Fprintf(w, "  - %s (%d paths tried): %s\n", r.Family, len(r.Tried), last)
		}
	}
}
