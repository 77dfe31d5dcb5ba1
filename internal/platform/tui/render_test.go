package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.SetCell(0, 0, '#', core.ColorGreen)
	s.SetCell(1, 0, '#', core.ColorGreen)
	s.SetCell(4, 1, 'o', core.ColorYellow)
	s.SetCell(2, 2, '@', core.ColorBrightWhite)

	out := RenderScreen(s, "")

	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("expected 2 line breaks for 3 rows, got %d", got)
	}
	for _, r := range []string{"##", "o", "@"} {
		if !strings.Contains(out, r) {
			t.Errorf("rendered screen missing %q", r)
		}
	}
}

func TestHUDRender(t *testing.T) {
	tests := []struct {
		name string
		hud  HUD
		want []string
		not  []string
	}{
		{
			name: "running",
			hud:  HUD{LevelName: "First Steps", Coins: 3, TotalCoins: 20, Elapsed: 1500 * time.Millisecond, State: sim.StateRunning},
			want: []string{"First Steps", "coins 3/20", "time 1.5s", "space: jump"},
		},
		{
			name: "message",
			hud:  HUD{State: sim.StateRunning, Message: "the roof is cracking!"},
			want: []string{"the roof is cracking!"},
		},
		{
			name: "paused",
			hud:  HUD{State: sim.StateRunning, Paused: true, Message: "hidden"},
			want: []string{"PAUSED"},
			not:  []string{"hidden"},
		},
		{
			name: "won short of the board",
			hud:  HUD{State: sim.StateWon, Coins: sim.QualifyingCoins - 1},
			want: []string{"LEVEL COMPLETE"},
			not:  []string{"leaderboard run!"},
		},
		{
			name: "won on the board",
			hud:  HUD{State: sim.StateWon, Coins: sim.QualifyingCoins},
			want: []string{"LEVEL COMPLETE", "leaderboard run!"},
		},
		{
			name: "lost",
			hud:  HUD{State: sim.StateLost, Coins: 30},
			want: []string{"GAME OVER"},
			not:  []string{"leaderboard run!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.hud.Render(120)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("HUD %q missing %q", out, w)
				}
			}
			for _, n := range tt.not {
				if strings.Contains(out, n) {
					t.Errorf("HUD %q should not contain %q", out, n)
				}
			}
		})
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0.0s"},
		{1500 * time.Millisecond, "1.5s"},
		{61*time.Second + 240*time.Millisecond, "61.2s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
