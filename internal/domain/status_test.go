package domain

import (
	"errors"
	"testing"
	"time"
)

func TestStatus_Next(t *testing.T) {
	tests := []struct {
		from    Status
		want    Status
		wantErr bool
	}{
		{StatusNew, StatusCooking, false},
		{StatusCooking, StatusReady, false},
		{StatusReady, StatusDone, false},
		{StatusDone, "", true},
	}

	for _, tt := range tests {
		got, err := tt.from.Next()
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Next(%s): expected ErrInvalidTransition, got %v", tt.from, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Next(%s): unexpected error: %v", tt.from, err)
		}
		if got != tt.want {
			t.Errorf("Next(%s) = %s, want %s", tt.from, got, tt.want)
		}
	}
}

func TestStatus_Prev(t *testing.T) {
	tests := []struct {
		from    Status
		want    Status
		wantErr bool
	}{
		{StatusCooking, StatusNew, false},
		{StatusReady, StatusCooking, false},
		{StatusNew, "", true},
		{StatusDone, "", true},
	}

	for _, tt := range tests {
		got, err := tt.from.Prev()
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Prev(%s): expected ErrInvalidTransition, got %v", tt.from, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Prev(%s): unexpected error: %v", tt.from, err)
		}
		if got != tt.want {
			t.Errorf("Prev(%s) = %s, want %s", tt.from, got, tt.want)
		}
	}
}

func TestStatus_Lane(t *testing.T) {
	for status, want := range map[Status]Lane{
		StatusNew:     LaneNew,
		StatusCooking: LaneCooking,
		StatusReady:   LaneReady,
	} {
		lane, ok := status.Lane()
		if !ok {
			t.Errorf("Lane(%s): expected ok", status)
		}
		if lane != want {
			t.Errorf("Lane(%s) = %s, want %s", status, lane, want)
		}
	}

	if _, ok := StatusDone.Lane(); ok {
		t.Error("done status should have no lane")
	}
}

func TestOrder_SetStatus(t *testing.T) {
	o := Order{Status: StatusNew}
	at := time.Now()

	o.SetStatus(StatusCooking, at)

	if o.Status != StatusCooking {
		t.Errorf("expected cooking, got %s", o.Status)
	}
	if o.StatusChangedAt == nil || !o.StatusChangedAt.Equal(at) {
		t.Error("StatusChangedAt should be stamped")
	}

	// Повторная установка того же статуса обновляет только отметку
	later := at.Add(time.Minute)
	o.SetStatus(StatusCooking, later)

	if o.Status != StatusCooking {
		t.Errorf("expected cooking, got %s", o.Status)
	}
	if !o.StatusChangedAt.Equal(later) {
		t.Error("StatusChangedAt should be updated on repeated set")
	}
}

func TestParseStation(t *testing.T) {
	if st, ok := ParseStation(""); !ok || st != StationAll {
		t.Error("empty string should parse as wildcard")
	}
	if st, ok := ParseStation("all"); !ok || st != StationAll {
		t.Error("all should parse as wildcard")
	}
	if st, ok := ParseStation("fry"); !ok || st != StationFry {
		t.Error("fry should parse")
	}
	if _, ok := ParseStation("bakery"); ok {
		t.Error("unknown station should not parse")
	}
}
