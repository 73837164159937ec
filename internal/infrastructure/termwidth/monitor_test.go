package termwidth

import (
	"context"
	"errors"
	"testing"

	"github.com/burst-go/burst/internal/domain"
)

func failingProbe(calls *[]int) Probe {
	return func(fd int) (int, error) {
		*calls = append(*calls, fd)
		return 0, errors.New("not a terminal")
	}
}

func TestMonitorResolution(t *testing.T) {
	tests := []struct {
		name    string
		setting domain.WidthSetting
		probe   Probe
		want    int
	}{
		{
			name:    "disabled",
			setting: domain.WidthSetting{Mode: domain.WidthDisabled},
			probe:   func(int) (int, error) { return 200, nil },
			want:    0,
		},
		{
			name:    "auto with every probe failing",
			setting: domain.WidthSetting{Mode: domain.WidthAuto},
			probe:   func(int) (int, error) { return 0, errors.New("nope") },
			want:    domain.DefaultTermWidth,
		},
		{
			name:    "explicit",
			setting: domain.WidthSetting{Mode: domain.WidthFixed, Columns: 132},
			probe:   func(int) (int, error) { return 200, nil },
			want:    132,
		},
		{
			name:    "auto first success wins",
			setting: domain.WidthSetting{Mode: domain.WidthAuto},
			probe: func(fd int) (int, error) {
				if fd == 0 {
					return 0, errors.New("stdin redirected")
				}
				return 100 + fd, nil
			},
			want: 101,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMonitor(tt.setting, WithProbe(tt.probe))
			if got := m.Width(); got != tt.want {
				t.Fatalf("Width() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonitorProbesInputOutputErrorInOrder(t *testing.T) {
	var calls []int
	NewMonitor(domain.WidthSetting{Mode: domain.WidthAuto}, WithProbe(failingProbe(&calls)))
	if len(calls) != 3 || calls[0] != 0 || calls[1] != 1 || calls[2] != 2 {
		t.Fatalf("unexpected probe order %v", calls)
	}
}

func TestMonitorRefreshPicksUpNewSize(t *testing.T) {
	width := 90
	m := NewMonitor(domain.WidthSetting{Mode: domain.WidthAuto},
		WithDescriptors(1),
		WithProbe(func(int) (int, error) { return width, nil }))
	if m.Width() != 90 {
		t.Fatalf("Width() = %d", m.Width())
	}
	width = 120
	m.Refresh()
	if m.Width() != 120 {
		t.Fatalf("Width() after refresh = %d", m.Width())
	}
}

func TestMonitorWatchStops(t *testing.T) {
	m := NewMonitor(domain.WidthSetting{Mode: domain.WidthFixed, Columns: 40})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := m.Watch(ctx)
	stop()
	if m.Width() != 40 {
		t.Fatalf("Width() = %d", m.Width())
	}
}
