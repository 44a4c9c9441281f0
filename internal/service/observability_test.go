package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_Success(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, slog.LevelInfo)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "generate-plan",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"strategy": "hybrid", "items": 4},
	})

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "use_case=generate-plan")
	assert.Contains(t, out, "duration_ms=12")
	assert.Less(t, strings.Index(out, "items=4"), strings.Index(out, "strategy=hybrid"), "fields are sorted")
}

func TestLogUseCaseObserver_Failure(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, nil)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "import-course", Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "success=false")
	assert.Contains(t, out, "error=boom")
}

func TestLogUseCaseObserver_Level(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, slog.LevelWarn)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "structure-course", Success: true})
	assert.Empty(t, buf.String(), "info events are filtered at warn")

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "structure-course", Err: errors.New("x")})
	assert.NotEmpty(t, buf.String())
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.Equal(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.Equal(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))

	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
	assert.Equal(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil, nil))
}
