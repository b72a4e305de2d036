package kafka

import (
	"testing"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})
	if p == nil {
		t.Fatal("expected non-nil producer")
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.writers == nil {
		t.Fatal("expected writers map to be initialized")
	}
	if len(p.writers) != 0 {
		t.Errorf("expected empty writers map, got %d entries", len(p.writers))
	}
}

func TestGetOrCreateWriterReusesWriter(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	w1 := p.getOrCreateWriter("lending.payments")
	w2 := p.getOrCreateWriter("lending.payments")
	if w1 != w2 {
		t.Error("expected the same writer instance for repeated topic")
	}

	w3 := p.getOrCreateWriter("lending.loans")
	if w3 == w1 {
		t.Error("expected distinct writers per topic")
	}
}
