package uid

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TableDriven(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		expectErr string
		check     func(t *testing.T, id string)
	}{
		{
			name: "default uuidv7",
			opts: Options{},
			check: func(t *testing.T, id string) {
				parsed, err := uuid.Parse(id)
				require.NoError(t, err)
				assert.Equal(t, uuid.Version(7), parsed.Version())
			},
		},
		{
			name: "snowflake",
			opts: Options{Strategy: StrategySnowflake, NodeID: 7},
			check: func(t *testing.T, id string) {
				assert.NotEmpty(t, id)
				assert.NotContains(t, id, "-")
			},
		},
		{
			name: "prefixed",
			opts: Options{Strategy: StrategyUUIDv7, Prefix: "worker-a"},
			check: func(t *testing.T, id string) {
				assert.True(t, strings.HasPrefix(id, "worker-a-"))
			},
		},
		{name: "snowflake node out of range", opts: Options{Strategy: StrategySnowflake, NodeID: 4096}, expectErr: "snowflake node"},
		{name: "unknown", opts: Options{Strategy: "ulid"}, expectErr: "unknown strategy"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen, err := New(tc.opts)
			if tc.expectErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)

			id, err := gen.Generate(context.Background())
			require.NoError(t, err)
			tc.check(t, id)
		})
	}
}

func TestSnowflake_ConcurrentUnique(t *testing.T) {
	gen, err := NewSnowflake(1)
	require.NoError(t, err)

	const n = 200
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := gen.Generate(context.Background())
			assert.NoError(t, err)
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}
