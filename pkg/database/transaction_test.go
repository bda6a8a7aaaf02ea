package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx records commit/rollback; every other pgx.Tx method is unused.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeStarter struct {
	tx       *fakeTx
	beginErr error
}

func (s *fakeStarter) Begin(context.Context) (pgx.Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return s.tx, nil
}

func TestWithTransactionCommits(t *testing.T) {
	s := &fakeStarter{tx: &fakeTx{}}

	err := WithTransaction(context.Background(), s, func(pgx.Tx) error { return nil })
	require.NoError(t, err)
	assert.True(t, s.tx.committed)
	assert.False(t, s.tx.rolledBack)
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	s := &fakeStarter{tx: &fakeTx{}}
	boom := errors.New("boom")

	err := WithTransaction(context.Background(), s, func(pgx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.tx.committed)
	assert.True(t, s.tx.rolledBack)
}

func TestWithTransactionRollsBackOnPanic(t *testing.T) {
	s := &fakeStarter{tx: &fakeTx{}}

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = WithTransaction(context.Background(), s, func(pgx.Tx) error { panic("kaboom") })
	})
	assert.True(t, s.tx.rolledBack)
}

func TestWithTransactionCommitFailure(t *testing.T) {
	commitErr := errors.New("serialization failure")
	s := &fakeStarter{tx: &fakeTx{commitErr: commitErr}}

	err := WithTransaction(context.Background(), s, func(pgx.Tx) error { return nil })
	assert.ErrorIs(t, err, commitErr)
	assert.True(t, s.tx.rolledBack)
}

func TestWithTransactionBeginFailure(t *testing.T) {
	beginErr := errors.New("pool closed")
	called := false

	err := WithTransaction(context.Background(), &fakeStarter{beginErr: beginErr}, func(pgx.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, beginErr)
	assert.False(t, called)
}
