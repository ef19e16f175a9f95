package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osteele/liquid"
)

// Limits applied to merge-tag rendering of a single block
const (
	DefaultMergeTagTimeout = 2 * time.Second
	DefaultMaxContentSize  = 64 * 1024
)

// MergeTagEngine resolves Liquid merge tags such as {{ contact.first_name }}
// inside block content. Rendering is bounded by a timeout and an input size.
type MergeTagEngine struct {
	timeout time.Duration
	maxSize int
	engine  *liquid.Engine
}

// NewMergeTagEngine returns an engine with the default limits
func NewMergeTagEngine() *MergeTagEngine {
	return NewMergeTagEngineWithLimits(DefaultMergeTagTimeout, DefaultMaxContentSize)
}

// NewMergeTagEngineWithLimits returns an engine with custom limits
func NewMergeTagEngineWithLimits(timeout time.Duration, maxSize int) *MergeTagEngine {
	return &MergeTagEngine{
		timeout: timeout,
		maxSize: maxSize,
		engine:  liquid.NewEngine(),
	}
}

// HasMergeTags reports whether content contains Liquid markup
func HasMergeTags(content string) bool {
	return strings.Contains(content, "{{") || strings.Contains(content, "{%")
}

// Render resolves the merge tags of content against data. Content without
// Liquid markup is returned unchanged.
func (e *MergeTagEngine) Render(ctx context.Context, content string, data map[string]interface{}) (string, error) {
	if !HasMergeTags(content) {
		return content, nil
	}
	if len(content) > e.maxSize {
		return "", fmt.Errorf("content size (%d bytes) exceeds maximum allowed size (%d bytes)", len(content), e.maxSize)
	}
	if data == nil {
		data = map[string]interface{}{}
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("panic during merge tag rendering: %v", r)}
			}
		}()
		out, err := e.engine.ParseAndRenderString(content, data)
		if err != nil {
			done <- result{err: fmt.Errorf("merge tag rendering failed: %w", err)}
			return
		}
		done <- result{out: out}
	}()

	select {
	case r := <-done:
		return r.out, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("merge tag rendering aborted after %v: %w", e.timeout, ctx.Err())
	}
}
