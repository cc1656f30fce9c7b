// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/test/integration/mock"
)

const (
	testJWTSecret   = "test-jwt-secret-key-for-testing-purposes"
	testTimezone    = "America/Sao_Paulo"
	defaultPassword = "DefaultPass123!"
	loginAttempts   = 5
)

// defaultNow is a Wednesday at noon in the test timezone.
var defaultNow = time.Date(2024, time.March, 13, 15, 0, 0, 0, time.UTC)

// environment holds resources shared by every scenario.
type environment struct {
	server   *httptest.Server
	db       *mock.Db
	redis    *mock.Redis
	timeMock *mock.Time
	cfg      *config.Config
}

var env *environment

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.Security.BcryptCost = bcrypt.MinCost
	cfg.Ledger.Timezone = testTimezone
	cfg.Ledger.DefaultPageSize = 20
	cfg.Ledger.MaxPageSize = 100
	cfg.RateLimit.LoginAttempts = loginAttempts
	cfg.RateLimit.LoginWindow = time.Minute
	return cfg
}

func startEnvironment() *environment {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	testDB := mock.NewDb(model.All()...)
	testRedis := mock.NewRedis()
	timeMock := mock.NewTime(cfg.Ledger.Location())

	injector := dependency.NewInjector(cfg, testDB.DbConn, testRedis.Client, timeMock)
	engine := injector.Router.Setup(cfg.Server.Environment)

	return &environment{
		server:   httptest.NewServer(engine),
		db:       testDB,
		redis:    testRedis,
		timeMock: timeMock,
		cfg:      cfg,
	}
}

// InitializeTestSuite starts the API once for the whole run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		env = startEnvironment()
	})

	ctx.AfterSuite(func() {
		if env != nil {
			env.server.Close()
			env.redis.Server.Close()
		}
	})
}

type testContext struct {
	uri      string
	client   *http.Client
	headers  map[string]string
	response *response

	accessToken  string
	refreshToken string
	currentUser  string

	// sessions keeps the tokens of every user logged in during the scenario.
	sessions map[string]session
	// saved holds values captured from responses, used as {{name}} placeholders.
	saved map[string]string
}

type session struct {
	accessToken  string
	refreshToken string
}

type response struct {
	status int
	body   any
	raw    string
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// User steps
	ctx.Given(`^a user "([^"]*)" exists$`, test.aUserExists)
	ctx.Given(`^a user "([^"]*)" exists with password "([^"]*)"$`, test.aUserExistsWithPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)

	// Ledger steps
	ctx.Given(`^I have a category "([^"]*)" of type "([^"]*)"$`, test.iHaveACategoryOfType)
	ctx.Given(`^I have an? (expense|income) of "([^"]*)" on "([^"]*)"$`, test.iHaveAnEntryOn)
	ctx.Given(`^I have an? (expense|income) of "([^"]*)" in "([^"]*)" on "([^"]*)"$`, test.iHaveAnEntryInOn)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I save the response field "([^"]*)" as "([^"]*)"$`, test.iSaveTheResponseFieldAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, test.theResponseFieldShouldNotExist)
	ctx.Then(`^the response list "([^"]*)" should have (\d+) items?$`, test.theResponseListShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	if env == nil {
		return fmt.Errorf("test environment is not running")
	}

	t.uri = env.server.URL
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUser = ""
	t.sessions = make(map[string]session)
	t.saved = make(map[string]string)

	env.timeMock.SetCurrentTime(defaultNow)
	if err := env.redis.ClearRedis(); err != nil {
		return err
	}
	return env.db.ClearDB()
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("current time must be RFC 3339: %w", err)
	}
	env.timeMock.SetCurrentTime(now)
	return nil
}
