package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cortexhq/cortex/internal/cortex/domain"
	"github.com/cortexhq/cortex/internal/cortex/store"
	"github.com/cortexhq/cortex/internal/cortex/store/drivers/sqlite"
	"github.com/cortexhq/cortex/pkg/cryptox"
)

func TestMain(m *testing.M) {
	cryptox.SetPepperPath(filepath.Join(os.TempDir(), "cortex-service-test-pepper"))
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// seedUser creates a user directly through the service so password policy
// and hashing match production paths.
func seedUser(t *testing.T, svc *UserService, name, email, password string, roles ...string) domain.User {
	t.Helper()

	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		Roles:    roles,
	})
	require.NoError(t, err)
	return u
}

func ptrTime(t time.Time) *time.Time { return &t }
