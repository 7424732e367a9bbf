package probe

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseNames splits a comma separated list, dropping blanks.
func ParseNames(list string) []string {
	var names []string
	for _, n := range strings.Split(list, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// ReadNames reads one name per line. Blank lines and lines starting with
// '#' are skipped.
func ReadNames(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read names: %w", err)
	}
	return names, nil
}

// ReadNamesFile reads names from path, see ReadNames.
func ReadNamesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open names file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadNames(f)
}

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Yoda Taller Probe
=================

Asks a running yoda-taller service about a batch of characters and
summarizes the answers.

Usage:
  go run ./cmd/taller-probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -names string
        Comma separated names (default "Luke Skywalker,Yoda,Yaddle,Arvel Crynyd,Spock")
  -file string
        File with one name per line; overrides -names
  -workers int
        Number of concurrent requests (default 4)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Log every answer
  -help
        Show this help message

Examples:
  go run ./cmd/taller-probe -names "Luke Skywalker,Yaddle"
  go run ./cmd/taller-probe -file names.txt -workers 16 -verbose
`)
}
