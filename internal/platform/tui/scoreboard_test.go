package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/sim"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

func pressBoard(m ScoreboardModel, msgs ...tea.KeyMsg) ScoreboardModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(ScoreboardModel)
	}
	return m
}

func seedRuns(t *testing.T, store *storage.Store) {
	t.Helper()
	runs := []storage.Attempt{
		{LevelID: "level1", Player: "ann", Coins: sim.QualifyingCoins, TotalCoins: 20, Completed: true, TimeMs: 50000},
		{LevelID: "level1", Player: "bob", Coins: 20, TotalCoins: 20, Completed: true, TimeMs: 40000},
		{LevelID: "level1", Player: "cat", Coins: sim.QualifyingCoins - 1, TotalCoins: 20, Completed: true, TimeMs: 10000},
		{LevelID: "level1", Player: "dan", Coins: 20, TotalCoins: 20, Completed: false},
		{LevelID: "level2", Player: "", Coins: 18, TotalCoins: 25, Completed: true, TimeMs: 70000},
	}
	for _, a := range runs {
		if _, err := store.RecordAttempt(a); err != nil {
			t.Fatalf("RecordAttempt: %v", err)
		}
	}
}

func TestScoreboardAllLevels(t *testing.T) {
	store := testStore(t)
	seedRuns(t, store)

	m := NewScoreboardModel(builtinRegistry(t), store, 10, 120, 30)

	entries := m.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 qualifying runs, got %d", len(entries))
	}
	wantPlayers := []string{"bob", "ann", ""}
	for i, want := range wantPlayers {
		if entries[i].Player != want {
			t.Errorf("rank %d: player %q, want %q", i+1, entries[i].Player, want)
		}
	}

	view := m.View()
	for _, want := range []string{"LEADERBOARD - All levels", "bob", "anonymous", "40.0s"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "cat") {
		t.Error("runs short of the coin threshold should not be listed")
	}
}

func TestScoreboardPerLevel(t *testing.T) {
	store := testStore(t)
	seedRuns(t, store)

	tab := tea.KeyMsg{Type: tea.KeyTab}
	m := pressBoard(NewScoreboardModel(builtinRegistry(t), store, 10, 120, 30), tab)

	if len(m.Entries()) != 2 {
		t.Fatalf("level1 should list 2 runs, got %d", len(m.Entries()))
	}
	view := m.View()
	if !strings.Contains(view, "LEADERBOARD - First Steps") {
		t.Error("title should name the level")
	}
	if !strings.Contains(view, "4 attempts, 3 completed") {
		t.Errorf("stats line missing from view:\n%s", view)
	}

	// Wraps backwards past the first tab.
	m = pressBoard(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	if !strings.Contains(m.View(), "LEADERBOARD - Breakthrough") {
		t.Error("shift+tab should wrap to the last level")
	}
	if len(m.Entries()) != 0 {
		t.Errorf("level4 has no runs, got %d", len(m.Entries()))
	}
}

func TestScoreboardLimit(t *testing.T) {
	store := testStore(t)
	seedRuns(t, store)

	m := NewScoreboardModel(builtinRegistry(t), store, 1, 120, 30)
	if len(m.Entries()) != 1 || m.Entries()[0].Player != "bob" {
		t.Errorf("limit 1 should keep only the fastest run, got %+v", m.Entries())
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(builtinRegistry(t), nil, 10, 60, 24)
	if !strings.Contains(m.View(), "Scores are not being saved.") {
		t.Error("view should explain that nothing is stored")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	reg := builtinRegistry(t)

	m := pressBoard(NewScoreboardModel(reg, nil, 10, 120, 30), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back")
	}

	m = pressBoard(NewScoreboardModel(reg, nil, 10, 120, 30), runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
