package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

func (t *testContext) aUserExists(username string) error {
	return t.createUser(username, defaultPassword)
}

func (t *testContext) aUserExistsWithPassword(username, password string) error {
	return t.createUser(username, password)
}

// createUser stores a user and its profile directly, skipping signup.
func (t *testContext) createUser(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(username, username+"@example.com", strings.ToUpper(username[:1])+username[1:], string(hash))
	return persistence.NewUserRepository(env.db.DbConn).CreateWithProfile(context.Background(), user, entity.NewProfile(user.ID))
}

// iAmLoggedInAs logs in through the API, creating the user first when needed.
// Switching back to a user already logged in reuses its tokens.
func (t *testContext) iAmLoggedInAs(username string) error {
	if s, ok := t.sessions[username]; ok {
		t.useSession(username, s)
		return nil
	}

	if err := t.ensureUser(username); err != nil {
		return err
	}

	payload, _ := json.Marshal(map[string]string{
		"username": username,
		"password": defaultPassword,
	})

	t.accessToken = ""
	resp, err := t.do(http.MethodPost, "/api/v1/auth/login", payload)
	if err != nil {
		return err
	}
	if resp.status != http.StatusOK {
		return fmt.Errorf("login as %s failed with %d: %s", username, resp.status, resp.raw)
	}

	s := session{
		accessToken:  fmt.Sprintf("%v", getFieldValue(resp.body, "access_token")),
		refreshToken: fmt.Sprintf("%v", getFieldValue(resp.body, "refresh_token")),
	}
	t.sessions[username] = s
	t.useSession(username, s)
	t.saved[username+"_id"] = fmt.Sprintf("%v", getFieldValue(resp.body, "user.id"))
	return nil
}

func (t *testContext) useSession(username string, s session) {
	t.currentUser = username
	t.accessToken = s.accessToken
	t.refreshToken = s.refreshToken
}

func (t *testContext) ensureUser(username string) error {
	var count int64
	if err := env.db.DbConn.Table("users").Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return t.createUser(username, defaultPassword)
}

// iHaveACategoryOfType creates a category for the current user and saves its
// id under the category name.
func (t *testContext) iHaveACategoryOfType(name, kind string) error {
	payload, _ := json.Marshal(map[string]string{
		"name": name,
		"type": kind,
	})

	id, err := t.createResource("/api/v1/categories", payload)
	if err != nil {
		return err
	}
	t.saved[name] = id
	return nil
}

func (t *testContext) iHaveAnEntryOn(kind, amount, date string) error {
	return t.createEntry(kind, amount, "", date)
}

func (t *testContext) iHaveAnEntryInOn(kind, amount, categoryName, date string) error {
	categoryID, ok := t.saved[categoryName]
	if !ok {
		return fmt.Errorf("category %q was not created in this scenario", categoryName)
	}
	return t.createEntry(kind, amount, categoryID, date)
}

// createEntry records an expense or income and saves its id as
// "<kind>_id", overwriting the previous one.
func (t *testContext) createEntry(kind, amount, categoryID, date string) error {
	body := map[string]any{
		"amount":      amount,
		"date":        date,
		"description": fmt.Sprintf("%s of %s", kind, amount),
	}
	if categoryID != "" {
		body["category"] = categoryID
	}
	payload, _ := json.Marshal(body)

	id, err := t.createResource("/api/v1/"+kind+"s", payload)
	if err != nil {
		return err
	}
	t.saved[kind+"_id"] = id
	return nil
}

func (t *testContext) createResource(path string, payload []byte) (string, error) {
	if t.accessToken == "" {
		return "", fmt.Errorf("log in before creating %s", path)
	}

	resp, err := t.do(http.MethodPost, path, payload)
	if err != nil {
		return "", err
	}
	if resp.status != http.StatusCreated {
		return "", fmt.Errorf("POST %s failed with %d: %s", path, resp.status, resp.raw)
	}

	id, ok := getFieldValue(resp.body, "id").(string)
	if !ok {
		return "", fmt.Errorf("POST %s returned no id: %s", path, resp.raw)
	}
	return id, nil
}
