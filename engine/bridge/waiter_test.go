package bridge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/flowgate/flowgate/engine/core"
	"github.com/flowgate/flowgate/engine/execution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaiter_Wait(t *testing.T) {
	execID := core.ID("exec-1")

	t.Run("Should return the live result while the run is tracked", func(t *testing.T) {
		live := &fakeCompletionSource{
			raw: execution.NewLive(&execution.LiveRun{Status: core.StatusSuccess}),
		}
		w := NewWaiter(live, &fakeExecutionRepo{})
		raw, err := w.Wait(t.Context(), execID)
		require.NoError(t, err)
		require.NotNil(t, raw)
		assert.Equal(t, execution.SourceLive, raw.Source)
	})

	t.Run("Should fall back to the persisted record when no longer tracked", func(t *testing.T) {
		live := &fakeCompletionSource{
			err: fmt.Errorf("%w: %s", ErrNotTracked, execID),
		}
		repo := &fakeExecutionRepo{records: map[core.ID]*execution.Record{
			execID: {ID: execID, Status: core.StatusSuccess},
		}}
		w := NewWaiter(live, repo)
		raw, err := w.Wait(t.Context(), execID)
		require.NoError(t, err)
		require.NotNil(t, raw)
		assert.Equal(t, execution.SourcePersisted, raw.Source)
		assert.Equal(t, execID, raw.Record.ID)
	})

	t.Run("Should request full unflattened data from the persisted store", func(t *testing.T) {
		live := &fakeCompletionSource{err: ErrNotTracked}
		repo := &fakeExecutionRepo{records: map[core.ID]*execution.Record{
			execID: {ID: execID, Status: core.StatusSuccess},
		}}
		w := NewWaiter(live, repo)
		_, err := w.Wait(t.Context(), execID)
		require.NoError(t, err)
		require.NotNil(t, repo.lastGet)
		assert.True(t, repo.lastGet.IncludeData)
	})

	t.Run("Should return nil result when the persisted record is also gone", func(t *testing.T) {
		live := &fakeCompletionSource{err: ErrNotTracked}
		w := NewWaiter(live, &fakeExecutionRepo{})
		raw, err := w.Wait(t.Context(), execID)
		require.NoError(t, err)
		assert.Nil(t, raw)
	})

	t.Run("Should propagate other live failures unchanged", func(t *testing.T) {
		liveErr := errors.New("engine crashed")
		live := &fakeCompletionSource{err: liveErr}
		repo := &fakeExecutionRepo{records: map[core.ID]*execution.Record{
			execID: {ID: execID},
		}}
		w := NewWaiter(live, repo)
		_, err := w.Wait(t.Context(), execID)
		require.Error(t, err)
		assert.Equal(t, liveErr, err)
		assert.Nil(t, repo.lastGet, "fallback must not run for non-tracking failures")
	})

	t.Run("Should surface persisted lookup failures other than a miss", func(t *testing.T) {
		live := &fakeCompletionSource{err: ErrNotTracked}
		repoErr := errors.New("connection refused")
		w := NewWaiter(live, &fakeExecutionRepo{err: repoErr})
		_, err := w.Wait(t.Context(), execID)
		require.Error(t, err)
		assert.ErrorIs(t, err, repoErr)
	})
}
