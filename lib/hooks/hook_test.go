package hooks

import (
	"testing"

	"github.com/ether/padformat/lib/hooks/events"
	"github.com/stretchr/testify/assert"
)

func TestFormatHooks(t *testing.T) {
	hook := NewHook()
	applied := make([]string, 0)
	removed := make([]string, 0)
	hook.EnqueueFormatApplyHook(func(ctx *events.FormatEvent) { applied = append(applied, ctx.Name) })
	hook.EnqueueFormatRemoveHook(func(ctx *events.FormatEvent) { removed = append(removed, ctx.Name) })

	hook.ExecuteFormatApplyHooks(&events.FormatEvent{Name: "bold"})
	hook.ExecuteFormatRemoveHooks(&events.FormatEvent{Name: "italic"})

	assert.Equal(t, []string{"bold"}, applied)
	assert.Equal(t, []string{"italic"}, removed)
}

func TestDequeueHook(t *testing.T) {
	hook := NewHook()
	calls := 0
	id := hook.EnqueueGetTextForExportHook(func(ctx *events.TextForExportContext) { calls++ })

	text := ""
	hook.ExecuteGetTextForExportHooks(&events.TextForExportContext{Text: &text})
	hook.DequeueHook(TextForExportHook, id)
	hook.ExecuteGetTextForExportHooks(&events.TextForExportContext{Text: &text})

	assert.Equal(t, 1, calls)
}

func TestExecuteHooks_IgnoresWrongContext(t *testing.T) {
	hook := NewHook()
	called := false
	hook.EnqueueGetHTMLForExportHook(func(ctx *events.HTMLForExportContext) { called = true })

	hook.ExecuteHooks(HTMLForExportHook, "not a context")
	hook.ExecuteHooks("unknown", nil)

	assert.False(t, called)
}
