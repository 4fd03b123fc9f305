package hooks

import (
	"github.com/ether/padformat/lib/hooks/events"
	uuid2 "github.com/google/uuid"
)

const (
	FormatApplyHook   = "formatApply"
	FormatRemoveHook  = "formatRemove"
	HTMLForExportHook = "getHTMLForExport"
	TextForExportHook = "getTextForExport"
)

type Hook struct {
	hooks map[string]map[string]func(ctx any)
}

func NewHook() Hook {
	return Hook{
		hooks: make(map[string]map[string]func(ctx any)),
	}
}

func (h *Hook) EnqueueFormatApplyHook(cb func(ctx *events.FormatEvent)) string {
	return h.EnqueueHook(FormatApplyHook, func(ctx any) {
		if event, ok := ctx.(*events.FormatEvent); ok {
			cb(event)
		}
	})
}

func (h *Hook) EnqueueFormatRemoveHook(cb func(ctx *events.FormatEvent)) string {
	return h.EnqueueHook(FormatRemoveHook, func(ctx any) {
		if event, ok := ctx.(*events.FormatEvent); ok {
			cb(event)
		}
	})
}

func (h *Hook) ExecuteFormatApplyHooks(ctx *events.FormatEvent) {
	h.ExecuteHooks(FormatApplyHook, ctx)
}

func (h *Hook) ExecuteFormatRemoveHooks(ctx *events.FormatEvent) {
	h.ExecuteHooks(FormatRemoveHook, ctx)
}

func (h *Hook) EnqueueGetHTMLForExportHook(cb func(ctx *events.HTMLForExportContext)) string {
	return h.EnqueueHook(HTMLForExportHook, func(ctx any) {
		if exportCtx, ok := ctx.(*events.HTMLForExportContext); ok {
			cb(exportCtx)
		}
	})
}

func (h *Hook) ExecuteGetHTMLForExportHooks(ctx *events.HTMLForExportContext) {
	h.ExecuteHooks(HTMLForExportHook, ctx)
}

func (h *Hook) EnqueueGetTextForExportHook(cb func(ctx *events.TextForExportContext)) string {
	return h.EnqueueHook(TextForExportHook, func(ctx any) {
		if exportCtx, ok := ctx.(*events.TextForExportContext); ok {
			cb(exportCtx)
		}
	})
}

func (h *Hook) ExecuteGetTextForExportHooks(ctx *events.TextForExportContext) {
	h.ExecuteHooks(TextForExportHook, ctx)
}

func (h *Hook) EnqueueHook(key string, ctx func(ctx any)) string {
	var uuid = uuid2.New()
	var _, ok = h.hooks[key]

	if !ok {
		h.hooks[key] = make(map[string]func(ctx any))
	}

	h.hooks[key][uuid.String()] = ctx

	return uuid.String()
}

func (h *Hook) DequeueHook(key, id string) {
	delete(h.hooks[key], id)
}

func (h *Hook) ExecuteHooks(key string, ctx any) {

	var _, ok = h.hooks[key]

	if !ok {
		return
	}

	for _, v := range h.hooks[key] {
		v(ctx)
	}
}
