package httpclient

import (
	"strconv"
	"testing"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/config"
)

func testBuilder() *Builder {
	return NewBuilder(*config.Testing())
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()
	builder := testBuilder()

	client, err := builder.Build(&ClientConfig{Name: "test-client", AuthType: AuthTypeNone})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Test successful registration
	err = registry.Register("test-client", client)
	if err != nil {
		t.Errorf("Register() error = %v", err)
	}

	// Test duplicate registration
	err = registry.Register("test-client", client)
	if err == nil {
		t.Error("Register() expected error for duplicate, got nil")
	}

	// Test empty name
	err = registry.Register("", client)
	if err == nil {
		t.Error("Register() expected error for empty name, got nil")
	}

	// Test nil client
	err = registry.Register("nil-client", nil)
	if err != nil {
		t.Errorf("Register() with nil client error = %v, want nil (registry doesn't reject nil)", err)
	}
}

func TestRegistry_Get(t *testing.T) {
	registry := NewRegistry()
	builder := testBuilder()

	client, err := builder.Build(&ClientConfig{Name: "test-client", AuthType: AuthTypeNone})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if err := registry.Register("test-client", client); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Test successful get
	retrieved, err := registry.Get("test-client")
	if err != nil {
		t.Errorf("Get() error = %v", err)
	}
	if retrieved != client {
		t.Error("Get() returned different client instance")
	}

	// Test get non-existent client
	_, err = registry.Get("non-existent")
	if err == nil {
		t.Error("Get() expected error for non-existent client, got nil")
	}
}

func TestRegistry_GetHTTPClient(t *testing.T) {
	registry := NewRegistry()
	builder := testBuilder()

	client, err := builder.Build(&ClientConfig{Name: "test-client", MaxResponseSize: 4096})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := registry.Register("test-client", client); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	httpClient, maxResponseSize, err := registry.GetHTTPClient("test-client")
	if err != nil {
		t.Fatalf("GetHTTPClient() error = %v", err)
	}
	if httpClient == nil {
		t.Error("GetHTTPClient() returned nil *http.Client")
	}
	if maxResponseSize != 4096 {
		t.Errorf("maxResponseSize = %v, want 4096", maxResponseSize)
	}
}

func TestRegistry_Has(t *testing.T) {
	registry := NewRegistry()
	builder := testBuilder()

	client, err := builder.Build(&ClientConfig{Name: "test-client"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if registry.Has("test-client") {
		t.Error("Has() returned true before registration")
	}

	registry.Register("test-client", client)

	if !registry.Has("test-client") {
		t.Error("Has() returned false after registration")
	}

	if registry.Has("non-existent") {
		t.Error("Has() returned true for non-existent client")
	}
}

func TestRegistry_List(t *testing.T) {
	registry := NewRegistry()
	builder := testBuilder()

	if len(registry.List()) != 0 {
		t.Error("List() should return empty slice for empty registry")
	}

	for i, name := range []string{"client1", "client2", "client3"} {
		client, err := builder.Build(&ClientConfig{Name: name})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		registry.Register(name, client)

		if list := registry.List(); len(list) != i+1 {
			t.Errorf("List() length = %v, want %v", len(list), i+1)
		}
	}

	list := registry.List()
	if len(list) != 3 {
		t.Errorf("List() length = %v, want 3", len(list))
	}

	names := make(map[string]bool)
	for _, name := range list {
		names[name] = true
	}
	for _, expected := range []string{"client1", "client2", "client3"} {
		if !names[expected] {
			t.Errorf("List() missing expected name %v", expected)
		}
	}
}

func TestRegistry_Count(t *testing.T) {
	registry := NewRegistry()
	builder := testBuilder()

	if registry.Count() != 0 {
		t.Error("Count() should return 0 for empty registry")
	}

	for i := 1; i <= 3; i++ {
		name := "client" + strconv.Itoa(i)
		client, err := builder.Build(&ClientConfig{Name: name})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		registry.Register(name, client)

		if registry.Count() != i {
			t.Errorf("Count() = %v, want %v", registry.Count(), i)
		}
	}
}

func TestRegistry_Clear(t *testing.T) {
	registry := NewRegistry()
	builder := testBuilder()

	for _, name := range []string{"client1", "client2", "client3"} {
		client, err := builder.Build(&ClientConfig{Name: name})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		registry.Register(name, client)
	}

	if registry.Count() != 3 {
		t.Errorf("Count() before clear = %v, want 3", registry.Count())
	}

	registry.Clear()

	if registry.Count() != 0 {
		t.Errorf("Count() after clear = %v, want 0", registry.Count())
	}

	for _, name := range []string{"client1", "client2", "client3"} {
		if registry.Has(name) {
			t.Errorf("Has(%v) returned true after clear", name)
		}
	}
}

func TestRegistry_Unregister(t *testing.T) {
	registry := NewRegistry()
	builder := testBuilder()

	client, err := builder.Build(&ClientConfig{Name: "test-client"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	registry.Register("test-client", client)

	if !registry.Has("test-client") {
		t.Error("Client not found after registration")
	}

	if err := registry.Unregister("test-client"); err != nil {
		t.Errorf("Unregister() error = %v", err)
	}

	if registry.Has("test-client") {
		t.Error("Client still exists after unregister")
	}

	if err := registry.Unregister("test-client"); err == nil {
		t.Error("Unregister() expected error for non-existent client, got nil")
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	registry := NewRegistry()
	builder := testBuilder()

	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func(id int) {
			name := "client" + strconv.Itoa(id)
			client, err := builder.Build(&ClientConfig{Name: name})
			if err != nil {
				t.Errorf("Build() error = %v", err)
			}
			registry.Register(name, client)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	if count := registry.Count(); count != 10 {
		t.Errorf("Count() after concurrent registrations = %v, want 10", count)
	}

	for i := 0; i < 10; i++ {
		go func(id int) {
			name := "client" + strconv.Itoa(id)
			if !registry.Has(name) {
				t.Errorf("Has(%v) returned false", name)
			}
			if _, err := registry.Get(name); err != nil {
				t.Errorf("Get(%v) error = %v", name, err)
			}
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

// Benchmark registry operations
func BenchmarkRegistry_Register(b *testing.B) {
	registry := NewRegistry()
	builder := testBuilder()
	clients := make([]*Client, b.N)

	for i := 0; i < b.N; i++ {
		clients[i], _ = builder.Build(&ClientConfig{Name: "client" + strconv.Itoa(i)})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		registry.Register("client"+strconv.Itoa(i), clients[i])
	}
}

func BenchmarkRegistry_Get(b *testing.B) {
	registry := NewRegistry()
	builder := testBuilder()

	for i := 0; i < 100; i++ {
		name := "client" + strconv.Itoa(i)
		client, _ := builder.Build(&ClientConfig{Name: name})
		registry.Register(name, client)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		registry.Get("client" + strconv.Itoa(i%100))
	}
}
