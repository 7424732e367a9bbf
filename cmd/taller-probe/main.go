package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/yodataller/internal/probe"
	"github.com/okian/yodataller/pkg/logger"
)

// Default configuration constants.
const (
	defaultNames       = "Luke Skywalker,Yoda,Yaddle,Arvel Crynyd,Spock"
	defaultWorkers     = 4
	defaultTimeout     = 10 * time.Second
	defaultProbeWindow = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8000", "Base URL of the service")
		names   = flag.String("names", defaultNames, "Comma separated names to compare with Yoda")
		file    = flag.String("file", "", "File with one name per line; overrides -names")
		workers = flag.Int("workers", defaultWorkers, "Number of concurrent requests")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Log every answer")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	list := probe.ParseNames(*names)
	if *file != "" {
		var err error
		if list, err = probe.ReadNamesFile(*file); err != nil {
			_, _ = os.Stderr.WriteString(err.Error() + "\n")
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultProbeWindow)
	defer cancel()

	config := &probe.Config{
		BaseURL: *baseURL,
		Names:   list,
		Workers: *workers,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	if _, err := probe.Run(ctx, config); err != nil {
		_, _ = os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
