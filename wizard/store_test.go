package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAndGet(t *testing.T) {
	st := NewStore(time.Hour)

	sess := st.Create(&fakeSubmitter{id: "x"})
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, StepProfile, sess.Machine.Step())

	got, ok := st.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	_, ok = st.Get("no-such-session")
	assert.False(t, ok)
}

func TestStoreDelete(t *testing.T) {
	st := NewStore(time.Hour)
	sess := st.Create(&fakeSubmitter{id: "x"})

	st.Delete(sess.ID)

	_, ok := st.Get(sess.ID)
	assert.False(t, ok)
	assert.Zero(t, st.Len())
}

func TestStoreSweepDropsOnlyIdleSessions(t *testing.T) {
	st := NewStore(time.Hour)

	stale := st.Create(&fakeSubmitter{id: "x"})
	fresh := st.Create(&fakeSubmitter{id: "y"})
	stale.LastActive = time.Now().Add(-2 * time.Hour)

	removed := st.Sweep()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, st.Len())

	_, ok := st.Get(stale.ID)
	assert.False(t, ok)
	_, ok = st.Get(fresh.ID)
	assert.True(t, ok)
}

func TestStoreGetRefreshesActivity(t *testing.T) {
	st := NewStore(time.Hour)
	sess := st.Create(&fakeSubmitter{id: "x"})
	sess.LastActive = time.Now().Add(-2 * time.Hour)

	_, ok := st.Get(sess.ID)
	require.True(t, ok)

	assert.Zero(t, st.Sweep(), "a touched session is no longer stale")
}
