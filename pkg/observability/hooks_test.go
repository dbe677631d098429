package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Parser hooks
	p := NoopParserHooks{}
	p.OnParseStart(ctx, "line", 512)
	p.OnParseComplete(ctx, "line", 12, 0, time.Second)
	p.OnPrintStart(ctx, 12, 4)
	p.OnPrintComplete(ctx, 640, time.Second)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "graph")
	c.OnCacheMiss(ctx, "graph")
	c.OnCacheSet(ctx, "graph", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "localhost", "/v1/parse")
	h.OnResponse(ctx, "POST", "localhost", "/v1/parse", 200, time.Second)
	h.OnError(ctx, "POST", "localhost", "/v1/parse", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Parser().(NoopParserHooks); !ok {
		t.Error("Parser() should return NoopParserHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customParser := &testParserHooks{}
	SetParserHooks(customParser)
	if Parser() != customParser {
		t.Error("SetParserHooks should set custom hooks")
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

	// Reset and verify
	Reset()
	if _, ok := Parser().(NoopParserHooks); !ok {
		t.Error("Reset() should restore NoopParserHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testParserHooks{}
	SetParserHooks(custom)

	// Setting nil should be ignored
	SetParserHooks(nil)

	if Parser() != custom {
		t.Error("SetParserHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testParserHooks struct{ NoopParserHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
