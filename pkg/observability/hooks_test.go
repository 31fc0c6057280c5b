package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnNormalizeStart(ctx, 8)
	p.OnNormalizeComplete(ctx, 9, 67, time.Millisecond, nil)
	p.OnRenderStart(ctx, "sunburst", []string{"svg"})
	p.OnRenderComplete(ctx, "sunburst", []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "geometry")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/render")
	h.OnResponse(ctx, "POST", "/v1/render", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	SetPipelineHooks(nil)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks(nil) should keep current hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset should restore NoopPipelineHooks")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	hooks := &testPipelineHooks{}
	SetPipelineHooks(hooks)

	ctx := context.Background()
	Pipeline().OnNormalizeStart(ctx, 3)
	Pipeline().OnNormalizeComplete(ctx, 4, 10, time.Millisecond, nil)

	if hooks.starts != 1 || hooks.rings != 4 || hooks.items != 10 {
		t.Errorf("hooks = %+v", hooks)
	}
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "normalize", attribute.Int("layers", 3))
	if span == nil {
		t.Fatal("StartSpan returned nil span")
	}
	if got := trace.SpanFromContext(ctx); !got.SpanContext().Equal(span.SpanContext()) {
		t.Error("context does not carry the new span")
	}
	EndSpan(span, errors.New("boom"))
	EndSpan(trace.SpanFromContext(context.Background()), nil)
}

type testPipelineHooks struct {
	NoopPipelineHooks
	starts, rings, items int
}

func (h *testPipelineHooks) OnNormalizeStart(context.Context, int) { h.starts++ }
func (h *testPipelineHooks) OnNormalizeComplete(_ context.Context, rings, items int, _ time.Duration, _ error) {
	h.rings, h.items = rings, items
}

type testCacheHooks struct{ NoopCacheHooks }

type testHTTPHooks struct{ NoopHTTPHooks }
