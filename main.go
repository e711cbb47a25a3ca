package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yjuanrodriguez/pw-api-testing/config"
	"github.com/yjuanrodriguez/pw-api-testing/fakeapi"
	"github.com/yjuanrodriguez/pw-api-testing/framework"
	"github.com/yjuanrodriguez/pw-api-testing/httpclient"
	"github.com/yjuanrodriguez/pw-api-testing/usertests"
)

const statusQueryTimeout = time.Second * 10

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args) {
		return 2
	}

	cfg, err := config.Load(params.envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	params.applyTo(&cfg)

	mainDebugLogger := logrus.New()
	mainDebugLogger.SetOutput(os.Stdout)
	mainDebugLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	mainDebugLogger.SetLevel(logrus.WarnLevel)
	if params.debugAll {
		mainDebugLogger.SetLevel(logrus.DebugLevel)
	}

	if params.local {
		harness, err := framework.NewTestHarness(cfg.HarnessHost, cfg.HarnessPort, mainDebugLogger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Test harness error: %s\n", err)
			return 1
		}
		defer func() { _ = harness.Close() }()

		endpoint := harness.NewMockEndpoint(
			fakeapi.NewHandler(fakeapi.Config{APIKey: cfg.APIKey, Logger: mainDebugLogger}),
			"reference user API",
			mainDebugLogger,
		)
		if cfg.PageURL == cfg.APIBaseURL {
			cfg.PageURL = endpoint.BaseURL()
		}
		cfg.APIBaseURL = endpoint.BaseURL()
		fmt.Printf("Serving the reference user API at %s\n", cfg.APIBaseURL)
	} else {
		client := httpclient.NewHTTPClient(nil, cfg.RequestTimeout)
		if err := framework.AwaitService(client, cfg.APIBaseURL, statusQueryTimeout, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Target service error: %s\n", err)
			return 1
		}
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := usertests.RunTestSuite(usertests.Environment{Config: cfg}, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun only the failed tests:")
		fmt.Printf("  %s\n", params.rerunCommand(args[0], results.Failures))
		return 1
	}
	return 0
}
