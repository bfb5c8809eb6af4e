package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"huf_go/internal/model"
)

func TestInMemorySaveFind(t *testing.T) {
	ctx := context.Background()
	r := NewRunRepoInMemory()

	run := &model.Run{ID: "a", Op: model.OpCompress, Input: "x.txt", CreatedAt: time.Now()}
	require.NoError(t, r.Save(ctx, run))

	got, err := r.FindByID(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, run, got)

	// stored copies are not shared with callers
	got.Input = "changed"
	again, err := r.FindByID(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "x.txt", again.Input)

	_, err = r.FindByID(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	r := NewRunRepoInMemory()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		require.NoError(t, r.Save(ctx, &model.Run{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	all, err := r.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "third", all[0].ID)
	require.Equal(t, "first", all[2].ID)

	two, err := r.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	require.Equal(t, "second", two[1].ID)
}

func TestNewWithoutDSNIsInMemory(t *testing.T) {
	r, closeFn, err := New(context.Background(), "")
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &runRepoInMemory{}, r)
}

func TestOpenRejectsBadDSN(t *testing.T) {
	_, err := Open(context.Background(), "::not a dsn")
	require.Error(t, err)
}

func TestNewUnreachableDatabase(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 포트 1은 연결이 거부되므로 Ping 단계에서 실패해야 해요
	r, closeRepo, err := New(ctx, "postgres://u:p@127.0.0.1:1/db")
	require.Error(t, err)
	require.Nil(t, r)
	require.Nil(t, closeRepo)
}
