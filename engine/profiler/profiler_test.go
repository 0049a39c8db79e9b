package profiler

import (
	"testing"
	"time"
)

func TestStart_DisabledRecordsNothing(t *testing.T) {
	Reset()
	Enable(false)

	end := Start("idle")
	end()

	if got := len(Snapshot()); got != 0 {
		t.Errorf("Snapshot() len = %d, want 0", got)
	}
}

func TestStart_AccumulatesPerScope(t *testing.T) {
	Reset()
	Enable(true)
	defer Enable(false)

	for i := 0; i < 3; i++ {
		end := Start("ui.layout")
		end()
	}
	Start("ui.render")()

	stats := Snapshot()
	if len(stats) != 2 {
		t.Fatalf("Snapshot() len = %d, want 2", len(stats))
	}
	if stats[0].Name != "ui.layout" || stats[1].Name != "ui.render" {
		t.Errorf("Snapshot() order = %q, %q, want ui.layout, ui.render", stats[0].Name, stats[1].Name)
	}
	if stats[0].Count != 3 {
		t.Errorf("ui.layout Count = %d, want 3", stats[0].Count)
	}
	if stats[0].Max < stats[0].Last {
		t.Errorf("Max %v < Last %v", stats[0].Max, stats[0].Last)
	}
}

func TestScopeStat_Mean(t *testing.T) {
	tests := map[string]struct {
		stat ScopeStat
		want time.Duration
	}{
		"empty":   {stat: ScopeStat{}, want: 0},
		"average": {stat: ScopeStat{Count: 4, Total: 8 * time.Millisecond}, want: 2 * time.Millisecond},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.stat.Mean(); got != tt.want {
				t.Errorf("Mean() = %v, want %v", got, tt.want)
			}
		})
	}
}
