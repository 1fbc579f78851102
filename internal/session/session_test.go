package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/mkraev/neurocontent-bot/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdleByDefault(t *testing.T) {
	m := NewManager()
	s, ok := m.Peek(42)
	assert.False(t, ok)
	assert.Equal(t, types.StepIdle, s.Step)
}

func TestFullFlow(t *testing.T) {
	m := NewManager()

	m.StartFlow(42, types.ContentProduct)
	s, ok := m.Peek(42)
	require.True(t, ok)
	assert.Equal(t, types.StepAwaitingField, s.Step)
	assert.Equal(t, types.ContentProduct, s.ContentType)

	require.True(t, m.SetField(42, "Red sneakers"))
	s, _ = m.Peek(42)
	assert.Equal(t, types.StepAwaitingConfirm, s.Step)
	assert.Equal(t, "Red sneakers", s.FieldValue)

	ct, field, ok := m.TakeConfirmed(42)
	require.True(t, ok)
	assert.Equal(t, types.ContentProduct, ct)
	assert.Equal(t, "Red sneakers", field)

	s, ok = m.Peek(42)
	assert.False(t, ok)
	assert.Equal(t, types.StepIdle, s.Step)
}

func TestTextIgnoredOutsideFieldStep(t *testing.T) {
	m := NewManager()

	assert.False(t, m.SetField(1, "hello"))

	m.StartFlow(1, types.ContentSite)
	require.True(t, m.SetField(1, "first"))
	// Already awaiting confirmation, further text is a no-op.
	assert.False(t, m.SetField(1, "second"))
	s, _ := m.Peek(1)
	assert.Equal(t, "first", s.FieldValue)
}

func TestDoubleConfirm(t *testing.T) {
	m := NewManager()
	m.StartFlow(7, types.ContentSocial)
	m.SetField(7, "autumn sale")

	_, _, ok := m.TakeConfirmed(7)
	require.True(t, ok)
	_, _, ok = m.TakeConfirmed(7)
	assert.False(t, ok)
}

func TestConfirmWithoutFlow(t *testing.T) {
	m := NewManager()
	_, _, ok := m.TakeConfirmed(404)
	assert.False(t, ok)
}

func TestClearFromEveryStep(t *testing.T) {
	m := NewManager()

	m.Clear(1) // idle: harmless

	m.StartFlow(1, types.ContentProduct)
	m.Clear(1)
	s, _ := m.Peek(1)
	assert.Equal(t, types.StepIdle, s.Step)

	m.StartFlow(1, types.ContentProduct)
	m.SetField(1, "x")
	m.Clear(1)
	s, _ = m.Peek(1)
	assert.Equal(t, types.StepIdle, s.Step)
	assert.Empty(t, s.FieldValue)
}

func TestStartFlowDiscardsStaleField(t *testing.T) {
	m := NewManager()
	m.StartFlow(1, types.ContentProduct)
	m.SetField(1, "old value")

	m.StartFlow(1, types.ContentSite)
	s, _ := m.Peek(1)
	assert.Equal(t, types.StepAwaitingField, s.Step)
	assert.Equal(t, types.ContentSite, s.ContentType)
	assert.Empty(t, s.FieldValue)
}

func TestSessionsIndependentAcrossUsers(t *testing.T) {
	m := NewManager()
	m.StartFlow(1, types.ContentProduct)
	m.StartFlow(2, types.ContentSite)
	m.SetField(1, "one")

	s2, _ := m.Peek(2)
	assert.Equal(t, types.StepAwaitingField, s2.Step)
	assert.Empty(t, s2.FieldValue)

	m.Clear(1)
	s2, _ = m.Peek(2)
	assert.Equal(t, types.StepAwaitingField, s2.Step)
}

func TestConcurrentUsers(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			m.StartFlow(userID, types.ContentProduct)
			assert.True(t, m.SetField(userID, fmt.Sprintf("item-%d", userID)))
			ct, field, ok := m.TakeConfirmed(userID)
			if !assert.True(t, ok) {
				return
			}
			assert.Equal(t, types.ContentProduct, ct)
			assert.Equal(t, fmt.Sprintf("item-%d", userID), field)
		}(int64(i + 1))
	}
	wg.Wait()
}

func TestConcurrentDoubleConfirmOneWinner(t *testing.T) {
	m := NewManager()
	m.StartFlow(9, types.ContentProduct)
	m.SetField(9, "race")

	const attempts = 16
	var wg sync.WaitGroup
	wins := make(chan struct{}, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, ok := m.TakeConfirmed(9); ok {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count)
}
