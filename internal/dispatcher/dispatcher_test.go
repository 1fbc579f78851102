package dispatcher

import (
	"context"
	"errors"
	"testing"

	"github.com/mkraev/neurocontent-bot/internal/generator"
	"github.com/mkraev/neurocontent-bot/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGate struct {
	allowed    bool
	consumeErr error

	consumeCalls int
	refundCalls  int
}

func (f *fakeGate) TryConsume(userID int64) (bool, error) {
	f.consumeCalls++
	return f.allowed, f.consumeErr
}

func (f *fakeGate) Refund(userID int64) error {
	f.refundCalls++
	return nil
}

type fakeGenerator struct {
	text string
	err  error

	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeHistory struct {
	err error

	saved []string
}

func (f *fakeHistory) SaveGeneration(userID int64, content string) error {
	f.saved = append(f.saved, content)
	return f.err
}

func TestDispatchSuccess(t *testing.T) {
	gate := &fakeGate{allowed: true}
	gen := &fakeGenerator{text: "Великолепные красные кроссовки."}
	history := &fakeHistory{}
	d := New(gate, gen, history)

	text, err := d.Dispatch(context.Background(), 42, types.ContentProduct, "Red sneakers")
	require.NoError(t, err)
	assert.Equal(t, "Великолепные красные кроссовки.", text)

	assert.Equal(t, 1, gate.consumeCalls)
	assert.Zero(t, gate.refundCalls)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Red sneakers")
	assert.Equal(t, []string{"Великолепные красные кроссовки."}, history.saved)
}

func TestDispatchDenied(t *testing.T) {
	gate := &fakeGate{allowed: false}
	gen := &fakeGenerator{text: "should not happen"}
	history := &fakeHistory{}
	d := New(gate, gen, history)

	_, err := d.Dispatch(context.Background(), 42, types.ContentProduct, "Red sneakers")
	require.ErrorIs(t, err, ErrLimitReached)

	assert.Zero(t, gen.calls)
	assert.Empty(t, history.saved)
	assert.Zero(t, gate.refundCalls)
}

func TestDispatchProviderErrorRefunds(t *testing.T) {
	gate := &fakeGate{allowed: true}
	gen := &fakeGenerator{err: generator.ErrProvider}
	history := &fakeHistory{}
	d := New(gate, gen, history)

	_, err := d.Dispatch(context.Background(), 42, types.ContentSite, "bakery")
	require.ErrorIs(t, err, generator.ErrProvider)

	assert.Equal(t, 1, gate.refundCalls)
	assert.Empty(t, history.saved)
}

func TestDispatchAdmissionError(t *testing.T) {
	storageErr := errors.New("db down")
	gate := &fakeGate{consumeErr: storageErr}
	gen := &fakeGenerator{}
	d := New(gate, gen, &fakeHistory{})

	_, err := d.Dispatch(context.Background(), 42, types.ContentSocial, "sale")
	require.ErrorIs(t, err, storageErr)
	assert.Zero(t, gen.calls)
}

func TestDispatchHistoryFailureStillReturnsText(t *testing.T) {
	gate := &fakeGate{allowed: true}
	gen := &fakeGenerator{text: "готовый текст"}
	history := &fakeHistory{err: errors.New("insert failed")}
	d := New(gate, gen, history)

	text, err := d.Dispatch(context.Background(), 42, types.ContentSocial, "sale")
	require.NoError(t, err)
	assert.Equal(t, "готовый текст", text)
	// The unit stays consumed: the generation happened.
	assert.Zero(t, gate.refundCalls)
}
