package hours

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/monstermash2008/time-range/internal/domain"
	"github.com/monstermash2008/time-range/internal/store"
)

func newService(t *testing.T) *Service {
	t.Helper()
	repo, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "hours.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return NewService(repo, zaptest.NewLogger(t))
}

func tm(h, m int) *domain.Time { return &domain.Time{Hour: h, Minute: m} }

func TestService_DefaultRange(t *testing.T) {
	svc := newService(t)
	rep, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRange(), rep.Range)
	assert.True(t, rep.OK())
	assert.Empty(t, rep.Messages())
}

func TestService_SetField(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	rep, err := svc.SetField(ctx, 1, domain.FieldFrom, "930am")
	require.NoError(t, err)
	assert.Equal(t, tm(9, 30), rep.Range.From)
	assert.Equal(t, tm(17, 0), rep.Range.To)
	assert.True(t, rep.OK())

	rep, err = svc.SetField(ctx, 1, domain.FieldTo, "9")
	require.NoError(t, err)
	assert.True(t, rep.RangeError, "9 reads as 9am, before 9:30am")
	assert.Equal(t, []string{MsgRangeInvalid}, rep.Messages())

	rep, err = svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, tm(9, 0), rep.Range.To, "backwards range is still stored")
	assert.True(t, rep.RangeError)
}

func TestService_SetField_InvalidKeepsValue(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	rep, err := svc.SetField(ctx, 1, domain.FieldTo, "teatime")
	require.NoError(t, err)
	assert.True(t, rep.ToError)
	assert.False(t, rep.FromError)
	assert.Equal(t, tm(17, 0), rep.Range.To)
	assert.Equal(t, []string{MsgToInvalid}, rep.Messages())
}

func TestService_SetField_EmptyClears(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	rep, err := svc.SetField(ctx, 1, domain.FieldFrom, "")
	require.NoError(t, err)
	assert.Nil(t, rep.Range.From)
	assert.True(t, rep.OK(), "empty is not an error")
	assert.False(t, rep.Range.Valid())
}

func TestService_SetField_UnknownField(t *testing.T) {
	_, err := newService(t).SetField(context.Background(), 1, domain.Field("middle"), "9am")
	assert.Error(t, err)
}

func TestService_SetRange(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	rep, err := svc.SetRange(ctx, 5, "8am – 4:30pm")
	require.NoError(t, err)
	assert.Equal(t, domain.NewRange(domain.Time{Hour: 8}, domain.Time{Hour: 16, Minute: 30}), rep.Range)
	assert.True(t, rep.OK())

	rep, err = svc.SetRange(ctx, 5, "10pm-6am")
	require.NoError(t, err)
	assert.True(t, rep.RangeError)

	_, err = svc.SetRange(ctx, 5, "all day")
	assert.ErrorIs(t, err, domain.ErrRangeFormat)
}

func TestService_ClearAndReset(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	rep, err := svc.Clear(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.Range{}, rep.Range)

	rep, err = svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.Range{}, rep.Range, "cleared range must not fall back to defaults")

	require.NoError(t, svc.Reset(ctx, 3))
	rep, err = svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRange(), rep.Range)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		valid    bool
		msgs     []string
	}{
		{"work day", "9am", "5pm", true, nil},
		{"both empty", "", "", false, nil},
		{"one empty", "9am", "", false, nil},
		{"backwards", "9:30pm", "9:20pm", false, []string{MsgRangeInvalid}},
		{"equal", "23:59", "11:59pm", false, []string{MsgRangeInvalid}},
		{"bad from hides range error", "x", "5pm", false, []string{MsgFromInvalid}},
		{"both bad", "x", "y", false, []string{MsgFromInvalid, MsgToInvalid}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := Evaluate(tt.from, tt.to)
			assert.Equal(t, tt.valid, rep.Range.Valid())
			assert.Equal(t, tt.msgs, rep.Messages())
		})
	}
}

func TestReport_MessagesSuppressRangeError(t *testing.T) {
	rep := Report{FromError: true, RangeError: true}
	assert.Equal(t, []string{MsgFromInvalid}, rep.Messages())
	assert.False(t, rep.OK())
}

func TestService_ConcurrentFieldEdits(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	_, err := svc.Get(ctx, 9)
	require.NoError(t, err)

	const n = 25
	errs := make(chan error, 2*n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.SetField(ctx, 9, domain.FieldFrom, "8am")
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := svc.SetField(ctx, 9, domain.FieldTo, "6pm")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rep, err := svc.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.NewRange(domain.Time{Hour: 8}, domain.Time{Hour: 18}), rep.Range,
		"neither edit may be lost")
}
