package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/yjuanrodriguez/pw-api-testing/config"
	"github.com/yjuanrodriguez/pw-api-testing/framework"
)

type commandParams struct {
	envFile  string
	apiURL   string
	pageURL  string
	apiKey   string
	local    bool
	host     string
	port     int
	filters  framework.RegexFilters
	debug    bool
	debugAll bool

	flags *flag.FlagSet
	set   map[string]bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVar(&c.envFile, "env-file", "", "file to load environment variables from (default .env, if present)")
	fs.StringVar(&c.apiURL, "url", "", "base URL of the user API (overrides API_BASE_URL)")
	fs.StringVar(&c.pageURL, "page-url", "", "URL that pages are opened on (overrides PAGE_URL)")
	fs.StringVar(&c.apiKey, "api-key", "", "value for the x-api-key header (overrides API_KEY)")
	fs.BoolVar(&c.local, "local", false, "run against the built-in reference API instead of a remote one")
	fs.StringVar(&c.host, "host", "", "external hostname of the test harness, for -local (overrides HARNESS_HOST)")
	fs.IntVar(&c.port, "port", 0, "port that the test harness will listen on, for -local (overrides HARNESS_PORT)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	c.flags = fs
	c.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.set[f.Name] = true })
	return true
}

// applyTo overrides configuration values with the flags that were given.
func (c *commandParams) applyTo(cfg *config.Config) {
	if c.set["url"] {
		if cfg.PageURL == cfg.APIBaseURL {
			cfg.PageURL = c.apiURL
		}
		cfg.APIBaseURL = c.apiURL
	}
	if c.set["page-url"] {
		cfg.PageURL = c.pageURL
	}
	if c.set["api-key"] {
		cfg.APIKey = c.apiKey
	}
	if c.set["host"] {
		cfg.HarnessHost = c.host
	}
	if c.set["port"] {
		cfg.HarnessPort = c.port
	}
}

// rerunCommand returns a shell command line that repeats this run for only the failed tests.
func (c *commandParams) rerunCommand(program string, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(program)
	c.flags.Visit(func(f *flag.Flag) {
		if f.Name == "run" || f.Name == "skip" {
			return
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			b.add("-" + f.Name + "=" + f.Value.String())
			return
		}
		b.add("-"+f.Name, f.Value.String())
	})
	for _, f := range failures {
		if len(f.TestID.Path) == 0 {
			continue
		}
		b.add("-run", "^"+regexp.QuoteMeta(f.TestID.String())+"(/|$)")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
