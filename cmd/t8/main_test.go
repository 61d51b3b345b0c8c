package main

import (
	"context"
	"strings"
	"testing"
)

func TestParseEpoch(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		want      int64
		wantError bool
	}{
		{
			name: "empty means most recent",
			text: "",
			want: 0,
		},
		{
			name: "RFC3339 UTC",
			text: "2019-04-10T14:08:44Z",
			want: 1554905324,
		},
		{
			name: "explicit offset",
			text: "2019-04-10T16:48:44+02:00",
			want: 1554907724,
		},
		{
			name: "bare date-time taken as UTC",
			text: "2019-04-10T14:08:44",
			want: 1554905324,
		},
		{
			name: "date only",
			text: "1970-01-01",
			want: 0,
		},
		{
			name:      "garbage",
			text:      "yesterday",
			wantError: true,
		},
		{
			name:      "bare epoch number rejected",
			text:      "1554905324",
			wantError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseEpoch(tc.text)
			if tc.wantError {
				if err == nil {
					t.Errorf("parseEpoch(%q): expected error, got nil", tc.text)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseEpoch(%q): unexpected error: %v", tc.text, err)
			}
			if got != tc.want {
				t.Errorf("parseEpoch(%q) = %d, want %d", tc.text, got, tc.want)
			}
		})
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	err := dispatch(context.Background(), nil, []string{"frobnicate"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), "frobnicate") {
		t.Errorf("error %q does not name the bad command", err)
	}
}

func TestSubAction(t *testing.T) {
	action, rest, err := subAction("wave", []string{"get", "--machine", "LP_Turbine"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != "get" {
		t.Errorf("action = %q, want %q", action, "get")
	}
	if len(rest) != 2 {
		t.Errorf("rest = %v, want two remaining args", rest)
	}

	if _, _, err := subAction("wave", nil); err == nil {
		t.Error("expected error for missing action")
	}
}
