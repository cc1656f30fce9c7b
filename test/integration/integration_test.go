//go:build integration

// Package integration runs the BDD feature suite against the full HTTP stack.
package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/expense-tracker/backend/test/integration/steps"
)

// TestFeatures runs every scenario under features/.
// GODOG_TAGS narrows the run (e.g. "~@slow"), GODOG_FORMAT swaps the formatter.
func TestFeatures(t *testing.T) {
	opts := godog.Options{
		Format:   envOr("GODOG_FORMAT", "pretty"),
		Paths:    []string{"features"},
		Output:   colors.Colored(os.Stdout),
		Tags:     os.Getenv("GODOG_TAGS"),
		Strict:   true,
		TestingT: t,
		// scenarios share one database, redis and clock
		Concurrency: 1,
	}

	suite := godog.TestSuite{
		Name:                 "expense-tracker-api",
		TestSuiteInitializer: steps.InitializeTestSuite,
		ScenarioInitializer:  steps.InitializeScenario,
		Options:              &opts,
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
