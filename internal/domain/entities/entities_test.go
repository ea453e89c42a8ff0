package entities

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPriceLock_StatusAt(t *testing.T) {
	created := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	lock := PriceLock{ID: "lock-1", CreatedAt: created, ExpiresAt: created.Add(30 * time.Minute)}

	tests := []struct {
		name string
		now  time.Time
		want LockStatus
	}{
		{name: "just created", now: created, want: LockStatusActive},
		{name: "at expiry", now: created.Add(30 * time.Minute), want: LockStatusActive},
		{name: "after expiry", now: created.Add(30*time.Minute + time.Nanosecond), want: LockStatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lock.StatusAt(tt.now); got != tt.want {
				t.Errorf("StatusAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriceLockView_FlattensStatus(t *testing.T) {
	created := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	lock := PriceLock{ID: "lock-1", RouteID: "route-1", CreatedAt: created, ExpiresAt: created.Add(time.Minute)}

	raw, err := json.Marshal(lock.View(created.Add(time.Hour)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["status"] != "expired" {
		t.Errorf("expected status expired, got %v", out["status"])
	}
	if out["routeId"] != "route-1" {
		t.Errorf("expected flattened routeId, got %v", out["routeId"])
	}
}

func TestPosition_JSONArray(t *testing.T) {
	raw, err := json.Marshal(HeatmapPoint{Position: NewPosition(-122.4, 37.7), Value: 0.5})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"position":[-122.4,37.7],"value":0.5}`
	if string(raw) != want {
		t.Errorf("got %s, want %s", raw, want)
	}
}
