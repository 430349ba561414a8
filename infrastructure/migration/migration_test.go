package migration

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueryer struct {
	executed []string
	failAt   int
}

func (f *fakeQueryer) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	f.executed = append(f.executed, query)
	if len(f.executed) == f.failAt {
		return nil, errors.New("permission denied")
	}
	return nil, nil
}

func (f *fakeQueryer) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errors.New("not used")
}

func (f *fakeQueryer) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

func TestMigrate(t *testing.T) {
	t.Run("Aplica todos os passos em ordem", func(t *testing.T) {
		conn := &fakeQueryer{}

		require.NoError(t, Migrate(context.Background(), conn))

		require.Len(t, conn.executed, len(statements))
		assert.True(t, strings.HasPrefix(conn.executed[0], "CREATE TABLE IF NOT EXISTS empresas"))
		for _, stmt := range conn.executed {
			assert.Contains(t, stmt, "IF NOT EXISTS")
		}
	})

	t.Run("Interrompe no primeiro erro", func(t *testing.T) {
		conn := &fakeQueryer{failAt: 2}

		err := Migrate(context.Background(), conn)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "migration step 2/3 failed")
		assert.Len(t, conn.executed, 2)
	})
}
