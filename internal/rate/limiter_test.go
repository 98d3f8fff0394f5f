package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	rdb "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis guarda contadores y TTLs en memoria. Solo implementa lo que usa
// RedisLimiter; el resto de rdb.Cmdable queda nil.
type fakeRedis struct {
	rdb.Cmdable
	hits    map[string]int64
	ttls    map[string]time.Duration
	execErr error
	keys    []string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{hits: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) TxPipeline() rdb.Pipeliner { return &fakePipe{r: f} }

// fakePipe encola las operaciones y las aplica en Exec, como MULTI/EXEC.
type fakePipe struct {
	rdb.Pipeliner
	r   *fakeRedis
	ops []func()
}

func (p *fakePipe) Incr(ctx context.Context, key string) *rdb.IntCmd {
	cmd := rdb.NewIntCmd(ctx, "incr", key)
	p.ops = append(p.ops, func() {
		p.r.hits[key]++
		p.r.keys = append(p.r.keys, key)
		cmd.SetVal(p.r.hits[key])
	})
	return cmd
}

func (p *fakePipe) ExpireNX(ctx context.Context, key string, exp time.Duration) *rdb.BoolCmd {
	cmd := rdb.NewBoolCmd(ctx, "expire", key, exp, "nx")
	p.ops = append(p.ops, func() {
		if _, ok := p.r.ttls[key]; !ok {
			p.r.ttls[key] = exp
			cmd.SetVal(true)
		}
	})
	return cmd
}

func (p *fakePipe) TTL(ctx context.Context, key string) *rdb.DurationCmd {
	cmd := rdb.NewDurationCmd(ctx, time.Second, "ttl", key)
	p.ops = append(p.ops, func() { cmd.SetVal(p.r.ttls[key]) })
	return cmd
}

func (p *fakePipe) Exec(context.Context) ([]rdb.Cmder, error) {
	if p.r.execErr != nil {
		return nil, p.r.execErr
	}
	for _, op := range p.ops {
		op()
	}
	return nil, nil
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	now := base
	fr := newFakeRedis()
	l := NewRedisLimiter(fr, "", 2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	r1, err := l.Allow(ctx, "1.2.3.4|/login")
	require.NoError(t, err)
	assert.True(t, r1.Allowed)
	assert.Equal(t, int64(1), r1.Remaining)
	assert.Equal(t, time.Minute, r1.WindowTTL)

	r2, err := l.Allow(ctx, "1.2.3.4|/login")
	require.NoError(t, err)
	assert.True(t, r2.Allowed)
	assert.Equal(t, int64(0), r2.Remaining)

	r3, err := l.Allow(ctx, "1.2.3.4|/login")
	require.NoError(t, err)
	assert.False(t, r3.Allowed)
	assert.Equal(t, int64(3), r3.CurrentHits)
	assert.Equal(t, time.Minute, r3.RetryAfter)

	// Todas las llamadas de la ventana usan la misma clave con prefijo default.
	want := "rl:1.2.3.4|/login:" + "1767261600"
	for _, k := range fr.keys {
		assert.Equal(t, want, k)
	}

	// Ventana nueva, contador nuevo.
	now = base.Add(time.Minute)
	r4, err := l.Allow(ctx, "1.2.3.4|/login")
	require.NoError(t, err)
	assert.True(t, r4.Allowed)
	assert.Equal(t, int64(1), r4.CurrentHits)
}

func TestRedisLimiter_ExecError(t *testing.T) {
	fr := newFakeRedis()
	fr.execErr = errors.New("connection refused")
	l := NewRedisLimiter(fr, "x:", 1, time.Minute)

	_, err := l.Allow(context.Background(), "k")
	assert.ErrorIs(t, err, fr.execErr)
}
