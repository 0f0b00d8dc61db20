// SPDX-License-Identifier: MIT
package telemetry

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestRunAttributes(t *testing.T) {
	attrs := RunAttributes("run-1", 3, 7)
	if len(attrs) != 3 {
		t.Fatalf("Expected 3 attributes, got %d", len(attrs))
	}
	verifyAttribute(t, attrs, RunIDKey, "run-1")
	verifyIntAttribute(t, attrs, RunDaysKey, 3)
	verifyIntAttribute(t, attrs, RunChannelsKey, 7)

	if got := len(RunAttributes("", 1, 1)); got != 2 {
		t.Errorf("Expected empty run id to be omitted, got %d attributes", got)
	}
}

func TestPairAttributes(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		alias   string
		date    string
		wantLen int
	}{
		{name: "all fields", channel: "1001", alias: "aomen", date: "2024-05-01", wantLen: 3},
		{name: "only channel", channel: "1001", wantLen: 1},
		{name: "empty fields", wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := PairAttributes(tt.channel, tt.alias, tt.date)
			if len(attrs) != tt.wantLen {
				t.Fatalf("Expected %d attributes, got %d", tt.wantLen, len(attrs))
			}
			if tt.channel != "" {
				verifyAttribute(t, attrs, ChannelIDKey, tt.channel)
			}
			if tt.date != "" {
				verifyAttribute(t, attrs, DateKey, tt.date)
			}
		})
	}
}

func TestScheduleAttributes(t *testing.T) {
	attrs := ScheduleAttributes(42, 2, 20, 1)
	verifyIntAttribute(t, attrs, ProgrammesKey, 42)
	verifyIntAttribute(t, attrs, DroppedKey, 2)
	verifyIntAttribute(t, attrs, PairsOKKey, 20)
	verifyIntAttribute(t, attrs, PairsFailKey, 1)
}

func TestErrorAttributes(t *testing.T) {
	attrs := ErrorAttributes("http_status")
	verifyBoolAttribute(t, attrs, ErrorKey, true)
	verifyAttribute(t, attrs, ErrorTypeKey, "http_status")
}

func verifyAttribute(t *testing.T, attrs []attribute.KeyValue, key, expectedValue string) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value.AsString() != expectedValue {
				t.Errorf("Expected %s=%s, got %s", key, expectedValue, attr.Value.AsString())
			}
			return
		}
	}
	t.Errorf("Attribute %s not found", key)
}

func verifyIntAttribute(t *testing.T, attrs []attribute.KeyValue, key string, expectedValue int) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value.AsInt64() != int64(expectedValue) {
				t.Errorf("Expected %s=%d, got %d", key, expectedValue, attr.Value.AsInt64())
			}
			return
		}
	}
	t.Errorf("Attribute %s not found", key)
}

func verifyBoolAttribute(t *testing.T, attrs []attribute.KeyValue, key string, expectedValue bool) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value.AsBool() != expectedValue {
				t.Errorf("Expected %s=%t, got %t", key, expectedValue, attr.Value.AsBool())
			}
			return
		}
	}
	t.Errorf("Attribute %s not found", key)
}
