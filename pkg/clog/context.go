package clog

import (
	"context"
	"maps"
	"sync"
)

type ctxSlog struct {
	mu         sync.RWMutex
	attributes map[string]any
}

type ctxSlogKey struct{}

// ContextWithSlog returns a context that can carry log attributes added
// later with AddAttribute. It starts with a copy of the attributes of ctx,
// and attributes added to it do not reach ctx.
func ContextWithSlog(ctx context.Context) context.Context {
	attributes := GetAttributes(ctx)
	if attributes == nil {
		attributes = make(map[string]any)
	}
	ctxSlog := &ctxSlog{
		attributes: attributes,
	}
	return context.WithValue(ctx, ctxSlogKey{}, ctxSlog)
}

func AddAttribute(ctx context.Context, key string, value any) {
	l, ok := ctx.Value(ctxSlogKey{}).(*ctxSlog)
	if !ok {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attributes[key] = value
}

const (
	ErrorAttributeKey   = "error.message"
	SessionAttributeKey = "session_id"
)

// AddError attaches err to every record logged with ctx.
func AddError(ctx context.Context, err error) {
	AddAttribute(ctx, ErrorAttributeKey, err)
}

func (c *ctxSlog) getAttributes() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.attributes)
}

func GetAttributes(ctx context.Context) map[string]any {
	l, ok := ctx.Value(ctxSlogKey{}).(*ctxSlog)
	if !ok {
		return nil
	}
	return l.getAttributes()
}
