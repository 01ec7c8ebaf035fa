package otel

import (
	"context"
	"testing"
)

func TestNewProviders_EmptyEndpoint(t *testing.T) {
	ctx := context.Background()
	providers, err := NewProviders(ctx, "", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders empty endpoint: %v", err)
	}
	if providers == nil {
		t.Fatal("providers should not be nil")
	}
	if providers.TracerProvider == nil {
		t.Error("TracerProvider should not be nil")
	}
	if providers.MeterProvider == nil {
		t.Error("MeterProvider should not be nil")
	}
	if providers.Shutdown == nil {
		t.Error("Shutdown should not be nil")
	}

	// Test that shutdown is a no-op
	if err := providers.Shutdown(ctx); err != nil {
		t.Errorf("shutdown should be no-op for empty endpoint, got error: %v", err)
	}
}

func TestNewProviders_WhitespaceEndpoint(t *testing.T) {
	ctx := context.Background()
	providers, err := NewProviders(ctx, "   ", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders whitespace endpoint: %v", err)
	}
	if providers == nil {
		t.Fatal("providers should not be nil")
	}
}

func TestNewProviders_MissingHost(t *testing.T) {
	ctx := context.Background()
	if _, err := NewProviders(ctx, "http://", "test-service", false); err == nil {
		t.Error("NewProviders should fail for endpoint without host")
	}
}

func TestSetGlobal_NoopProviders(t *testing.T) {
	ctx := context.Background()
	providers, err := NewProviders(ctx, "", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}
	// Must not panic.
	providers.SetGlobal()
}
