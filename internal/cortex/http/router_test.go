package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cortexhq/cortex/internal/cortex/service"
	"github.com/cortexhq/cortex/internal/cortex/store"
	"github.com/cortexhq/cortex/internal/cortex/store/drivers/sqlite"
	"github.com/cortexhq/cortex/pkg/cryptox"
	"github.com/cortexhq/cortex/pkg/httpx"
	"github.com/cortexhq/cortex/pkg/jwtx"
)

func TestMain(m *testing.M) {
	cryptox.SetPepperPath(filepath.Join(os.TempDir(), "cortex-http-test-pepper"))
	os.Exit(m.Run())
}

type fixture struct {
	router *Router
	store  store.Store
	users  *service.UserService
	signer jwtx.Signer

	// each fixture gets its own client IP so rate limit buckets never
	// bleed between tests
	clientIP string
}

var fixtureSeq int

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	secret := []byte("router-test-secret")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier := jwtx.NewVerifierHS256(secret, "cortex-test")

	users := &service.UserService{Store: st}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(verifier, "test", st, logger)
	router.AuthService = &service.AuthService{
		Store:     st,
		Signer:    signer,
		Issuer:    "cortex-test",
		AccessTTL: time.Hour,
	}
	router.UserService = users
	router.ContentService = &service.ContentService{Store: st}
	router.EventService = &service.EventService{Store: st}
	router.TermService = &service.TermService{Store: st}
	router.BootstrapService = &service.BootstrapService{
		Store: st,
		Users: users,
		Token: "setup-token",
	}
	router.ApplyRoutes()

	fixtureSeq++
	return &fixture{
		router:   router,
		store:    st,
		users:    users,
		signer:   signer,
		clientIP: fmt.Sprintf("10.1.%d.%d", fixtureSeq/250, fixtureSeq%250+1),
	}
}

func (f *fixture) seedUser(t *testing.T, name, email, password string, roles ...string) {
	t.Helper()
	_, err := f.users.CreateUser(context.Background(), service.CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		Roles:    roles,
	})
	require.NoError(t, err)
}

// token signs claims directly so tests don't burn authenticate rate budget.
func (f *fixture) token(t *testing.T, email, role, entry string) string {
	t.Helper()

	u, err := f.store.Users().GetUserByEmail(context.Background(), email)
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims(
		u.ID, u.Name, u.Email, role, entry,
		time.Hour, "cortex-test", time.Now(),
	)
	tok, err := f.signer.Sign(claims)
	require.NoError(t, err)
	return tok
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("X-Forwarded-For", f.clientIP)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(httpx.TokenHeader, token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (bool, string, json.RawMessage) {
	t.Helper()

	var env struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Payload json.RawMessage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Success, env.Message, env.Payload
}

func TestWelcomeRoutes(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "Ada", "ada@example.com", "hunter22", "editor")

	t.Run("root greets without a token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		ok, msg, _ := decodeEnvelope(t, rec)
		require.True(t, ok)
		require.NotEmpty(t, msg)
	})

	t.Run("api greeting requires a token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		_, msg, _ := decodeEnvelope(t, rec)
		require.Equal(t, "No token provided.", msg)

		tok := f.token(t, "ada@example.com", "editor", jwtx.EntryApp)
		rec = f.do(t, http.MethodGet, "/api", tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		_, msg, _ = decodeEnvelope(t, rec)
		require.Contains(t, msg, "Ada")
	})
}

func TestAuthenticateEndpoint(t *testing.T) {
	t.Run("valid credentials yield a flat token response", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, "Root", "root@example.com", "s3cret", "admin")

		rec := f.do(t, http.MethodPost, "/api/authenticate", "", map[string]string{
			"email":    "root@example.com",
			"password": "s3cret",
			"entry":    "dash",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			Token   string `json:"token"`
			ID      string `json:"_id"`
			Role    string `json:"role"`
			Entry   string `json:"entry"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.True(t, resp.Success)
		require.Equal(t, "Enjoy your admin token!", resp.Message)
		require.NotEmpty(t, resp.Token)
		require.NotEmpty(t, resp.ID)
		require.Equal(t, "dash", resp.Entry)

		// The issued token opens protected routes.
		rec = f.do(t, http.MethodGet, "/api/me", resp.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong password and unknown email share one message", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, "Root", "root@example.com", "s3cret", "admin")

		recWrong := f.do(t, http.MethodPost, "/api/authenticate", "", map[string]string{
			"email": "root@example.com", "password": "bad", "entry": "app",
		})
		recUnknown := f.do(t, http.MethodPost, "/api/authenticate", "", map[string]string{
			"email": "ghost@example.com", "password": "bad", "entry": "app",
		})

		require.Equal(t, http.StatusUnauthorized, recWrong.Code)
		require.Equal(t, http.StatusUnauthorized, recUnknown.Code)
		_, msgWrong, _ := decodeEnvelope(t, recWrong)
		_, msgUnknown, _ := decodeEnvelope(t, recUnknown)
		require.Equal(t, msgWrong, msgUnknown)
	})

	t.Run("non-admin cannot take the dash entry", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, "Ada", "ada@example.com", "hunter22", "editor", "reader")

		rec := f.do(t, http.MethodPost, "/api/authenticate", "", map[string]string{
			"email": "ada@example.com", "password": "hunter22", "entry": "dash",
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
		ok, _, _ := decodeEnvelope(t, rec)
		require.False(t, ok)
	})
}

func TestTokenInfoAndMe(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "Ada", "ada@example.com", "hunter22", "editor")
	tok := f.token(t, "ada@example.com", "editor", jwtx.EntryApp)

	t.Run("api user echoes the claims and token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/user", tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		_, _, payload := decodeEnvelope(t, rec)
		var info struct {
			Name  string `json:"name"`
			Email string `json:"email"`
			Role  string `json:"role"`
			Entry string `json:"entry"`
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(payload, &info))
		require.Equal(t, "Ada", info.Name)
		require.Equal(t, "editor", info.Role)
		require.Equal(t, tok, info.Token)
	})

	t.Run("api me loads the record and hides the hash", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/me", tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotContains(t, rec.Body.String(), "argon2id")

		_, _, payload := decodeEnvelope(t, rec)
		var u struct {
			Email string   `json:"email"`
			Roles []string `json:"roles"`
		}
		require.NoError(t, json.Unmarshal(payload, &u))
		require.Equal(t, "ada@example.com", u.Email)
		require.Equal(t, []string{"editor"}, u.Roles)
	})

	t.Run("token in query parameter also works", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/user?token="+tok, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestUserRoutes(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "Root", "root@example.com", "s3cret", "admin")
	f.seedUser(t, "Ada", "ada@example.com", "hunter22", "editor")

	dashTok := f.token(t, "root@example.com", "admin", jwtx.EntryDash)
	appTok := f.token(t, "ada@example.com", "editor", jwtx.EntryApp)

	t.Run("listing is dashboard-only", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/users", appTok, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)

		rec = f.do(t, http.MethodGet, "/api/users", dashTok, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		_, _, payload := decodeEnvelope(t, rec)
		var users []struct {
			Email string `json:"email"`
		}
		require.NoError(t, json.Unmarshal(payload, &users))
		require.Len(t, users, 2)
	})

	t.Run("role and query filters", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/users?roles=admin", dashTok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		_, _, payload := decodeEnvelope(t, rec)
		var users []struct {
			Email string `json:"email"`
		}
		require.NoError(t, json.Unmarshal(payload, &users))
		require.Len(t, users, 1)
		require.Equal(t, "root@example.com", users[0].Email)

		rec = f.do(t, http.MethodGet, "/api/users?q=ada", dashTok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		_, _, payload = decodeEnvelope(t, rec)
		require.NoError(t, json.Unmarshal(payload, &users))
		require.Len(t, users, 1)
	})

	t.Run("create validates and maps conflicts", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/users", dashTok, map[string]any{
			"email": "new@example.com", "roles": []string{"editor"},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		_, msg, _ := decodeEnvelope(t, rec)
		require.Equal(t, "Name, roles, or email fields are missing in post body.", msg)

		rec = f.do(t, http.MethodPost, "/api/users", dashTok, map[string]any{
			"name": "Copy", "email": "ada@example.com",
			"password": "pw", "roles": []string{"editor"},
		})
		require.Equal(t, http.StatusConflict, rec.Code)

		rec = f.do(t, http.MethodPost, "/api/users", dashTok, map[string]any{
			"name": "New", "email": "new@example.com",
			"password": "pw", "roles": []string{"editor"},
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotContains(t, rec.Body.String(), "argon2id")
	})

	t.Run("password change needs the current password", func(t *testing.T) {
		u, err := f.store.Users().GetUserByEmail(context.Background(), "ada@example.com")
		require.NoError(t, err)

		rec := f.do(t, http.MethodPut, "/api/users/"+u.ID, appTok, map[string]string{
			"newPassword": "next", "currentPassword": "wrong",
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
		_, msg, _ := decodeEnvelope(t, rec)
		require.Equal(t, "Updating password failed. Incorrect current password.", msg)

		rec = f.do(t, http.MethodPut, "/api/users/"+u.ID, appTok, map[string]string{
			"newPassword": "next", "currentPassword": "hunter22",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete is dashboard-only and returns the record", func(t *testing.T) {
		u, err := f.store.Users().GetUserByEmail(context.Background(), "ada@example.com")
		require.NoError(t, err)

		rec := f.do(t, http.MethodDelete, "/api/users/"+u.ID, appTok, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)

		rec = f.do(t, http.MethodDelete, "/api/users/"+u.ID, dashTok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		_, _, payload := decodeEnvelope(t, rec)
		var deleted struct {
			Email string `json:"email"`
		}
		require.NoError(t, json.Unmarshal(payload, &deleted))
		require.Equal(t, "ada@example.com", deleted.Email)

		rec = f.do(t, http.MethodGet, "/api/users/"+u.ID, dashTok, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestContentRoutes(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "Ada", "ada@example.com", "hunter22", "editor")
	tok := f.token(t, "ada@example.com", "editor", jwtx.EntryApp)

	t.Run("create update publish cycle", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/contents", tok, map[string]string{
			"title": "Post", "type": "article", "body": "draft text",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		_, _, payload := decodeEnvelope(t, rec)
		var c struct {
			ID          string     `json:"_id"`
			State       string     `json:"state"`
			PublishTime *time.Time `json:"publishTime"`
		}
		require.NoError(t, json.Unmarshal(payload, &c))
		require.Equal(t, "draft", c.State)
		require.Nil(t, c.PublishTime)

		rec = f.do(t, http.MethodPut, "/api/contents/"+c.ID, tok, map[string]string{
			"state": "published",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		_, _, payload = decodeEnvelope(t, rec)
		require.NoError(t, json.Unmarshal(payload, &c))
		require.Equal(t, "published", c.State)
		require.NotNil(t, c.PublishTime)
	})

	t.Run("list filters by state", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/contents?state=published", tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		_, _, payload := decodeEnvelope(t, rec)
		var list []json.RawMessage
		require.NoError(t, json.Unmarshal(payload, &list))
		require.Len(t, list, 1)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/contents/nope", tok, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEventAndTermRoutes(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "Ada", "ada@example.com", "hunter22", "editor")
	tok := f.token(t, "ada@example.com", "editor", jwtx.EntryApp)

	t.Run("event round-trip", func(t *testing.T) {
		start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
		rec := f.do(t, http.MethodPost, "/api/events", tok, map[string]any{
			"title":     "Launch",
			"location":  "HQ",
			"startTime": start,
			"endTime":   start.Add(2 * time.Hour),
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = f.do(t, http.MethodGet, "/api/events", tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		_, _, payload := decodeEnvelope(t, rec)
		var events []struct {
			Title string `json:"title"`
		}
		require.NoError(t, json.Unmarshal(payload, &events))
		require.Len(t, events, 1)
		require.Equal(t, "Launch", events[0].Title)
	})

	t.Run("term round-trip", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/terms", tok, map[string]string{
			"name": "CMS", "definition": "Content management system",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		_, _, payload := decodeEnvelope(t, rec)
		var term struct {
			ID string `json:"_id"`
		}
		require.NoError(t, json.Unmarshal(payload, &term))

		rec = f.do(t, http.MethodPut, "/api/terms/"+term.ID, tok, map[string]string{
			"definition": "Updated definition",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = f.do(t, http.MethodDelete, "/api/terms/"+term.ID, tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("mutations require a logged-in user", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/terms", "", map[string]string{"name": "X"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBootstrapRoute(t *testing.T) {
	t.Run("seeds the first admin exactly once", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/bootstrap", "", map[string]string{
			"token": "wrong", "name": "Root", "email": "root@example.com", "password": "s3cret",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = f.do(t, http.MethodPost, "/api/bootstrap", "", map[string]string{
			"token": "setup-token", "name": "Root", "email": "root@example.com", "password": "s3cret",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = f.do(t, http.MethodPost, "/api/bootstrap", "", map[string]string{
			"token": "setup-token", "name": "Again", "email": "again@example.com", "password": "pw",
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHealthRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var health struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "ok", health.Checks.Database)
}
