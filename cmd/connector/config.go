// cmd/connector/config.go
// Helper for parsing CLI flags so that main.go stays minimal.  Everything
// else about configuration lives in internal/config; the flags here only
// locate the file and select the logger profile.
//
// Usage pattern from main.go:
//
//	opts := parseFlags()
package main

import "flag"

type cliOptions struct {
    configPath  string
    dev         bool
    showVersion bool
}

// parseFlags parses flags once during program start.
func parseFlags() cliOptions {
    var opts cliOptions
    flag.StringVar(&opts.configPath, "config", "", "path to the app config file (JSON); defaults to CONNECTOR_CONFIG or app_config.json")
    flag.BoolVar(&opts.dev, "dev", false, "use a development logger (console encoder, debug level)")
    flag.BoolVar(&opts.showVersion, "version", false, "print version and exit")
    flag.Parse()
    return opts
}
