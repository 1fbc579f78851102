package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/mkraev/neurocontent-bot/internal/generator"
	"github.com/mkraev/neurocontent-bot/types"
)

// ErrLimitReached is the normal "quota exhausted" outcome, not a failure.
var ErrLimitReached = errors.New("request limit reached")

type AdmissionGate interface {
	TryConsume(userID int64) (bool, error)
	Refund(userID int64) error
}

type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type HistoryWriter interface {
	SaveGeneration(userID int64, content string) error
}

// Dispatcher runs one generation request end to end: admission, the
// provider call, and the bookkeeping writes. The provider call happens with
// no in-process lock held; the unit reserved at admission is refunded if the
// provider fails.
type Dispatcher struct {
	gate    AdmissionGate
	gen     TextGenerator
	history HistoryWriter
}

func New(gate AdmissionGate, gen TextGenerator, history HistoryWriter) *Dispatcher {
	return &Dispatcher{gate: gate, gen: gen, history: history}
}

func (d *Dispatcher) Dispatch(ctx context.Context, userID int64, contentType types.ContentType, fieldValue string) (string, error) {
	reqID := uuid.NewString()

	ok, err := d.gate.TryConsume(userID)
	if err != nil {
		return "", fmt.Errorf("admission check: %w", err)
	}
	if !ok {
		log.Printf("dispatch %s: user %d denied, limit reached", reqID, userID)
		return "", ErrLimitReached
	}

	prompt := generator.BuildPrompt(contentType, fieldValue)
	text, err := d.gen.Generate(ctx, prompt)
	if err != nil {
		if refundErr := d.gate.Refund(userID); refundErr != nil {
			log.Printf("dispatch %s: refund for user %d failed: %v", reqID, userID, refundErr)
		}
		return "", err
	}

	// The generation already happened and the unit is spent; a failed
	// history write is logged, not rolled back.
	if err := d.history.SaveGeneration(userID, text); err != nil {
		log.Printf("dispatch %s: save history for user %d failed: %v", reqID, userID, err)
	}
	log.Printf("dispatch %s: user %d generated %d chars (%s)", reqID, userID, len(text), contentType)
	return text, nil
}
