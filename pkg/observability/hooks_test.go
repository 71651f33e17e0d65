package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Registry hooks
	r := NoopRegistryHooks{}
	r.OnLookupStart(ctx, "details", "eventemitter3")
	r.OnLookupComplete(ctx, "details", "eventemitter3", time.Second, nil)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "registry.npmjs.org", "/eventemitter3")
	h.OnResponse(ctx, "GET", "registry.npmjs.org", "/eventemitter3", 200, time.Second)
	h.OnError(ctx, "GET", "registry.npmjs.org", "/eventemitter3", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Registry().(NoopRegistryHooks); !ok {
		t.Error("Registry() should return NoopRegistryHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customRegistry := &testRegistryHooks{}
	SetRegistryHooks(customRegistry)
	if Registry() != customRegistry {
		t.Error("SetRegistryHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Registry().(NoopRegistryHooks); !ok {
		t.Error("Reset() should restore NoopRegistryHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testHTTPHooks{}
	SetHTTPHooks(custom)

	// Setting nil should be ignored
	SetHTTPHooks(nil)

	if HTTP() != custom {
		t.Error("SetHTTPHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testRegistryHooks struct{ NoopRegistryHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
