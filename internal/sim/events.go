package sim

// QualifyingCoins is the coin count a run needs for the global leaderboard.
const QualifyingCoins = 15

// Qualifies reports whether a run with the given coin count may enter the
// global leaderboard. Level and time do not matter.
func Qualifies(coins int) bool {
	return coins >= QualifyingCoins
}

// EventKind identifies an outcome the simulation reports to its host.
type EventKind int

const (
	EventCoinCollected EventKind = iota
	EventGameOver
	EventGameWon
	EventRoofCracked
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventCoinCollected:
		return "coin_collected"
	case EventGameOver:
		return "game_over"
	case EventGameWon:
		return "game_won"
	case EventRoofCracked:
		return "roof_cracked"
	default:
		return "unknown"
	}
}

// Event is one host-visible outcome of a tick.
type Event struct {
	Kind EventKind
	// Coins is the collected count after the event.
	Coins int
	// Total is the number of coins the level started with.
	Total int
	// ElapsedMs is set for EventGameWon.
	ElapsedMs int64
}

// Hooks are optional callbacks fired synchronously inside Tick, in event order.
// The same events are also returned in TickOutcome.
type Hooks struct {
	OnCoinCollect func(coins int)
	OnGameOver    func(coins, total int)
	OnGameWon     func(coins, total int, elapsedMs int64)
	OnRoofCracked func()
}

func (h Hooks) fire(e Event) {
	switch e.Kind {
	case EventCoinCollected:
		if h.OnCoinCollect != nil {
			h.OnCoinCollect(e.Coins)
		}
	case EventGameOver:
		if h.OnGameOver != nil {
			h.OnGameOver(e.Coins, e.Total)
		}
	case EventGameWon:
		if h.OnGameWon != nil {
			h.OnGameWon(e.Coins, e.Total, e.ElapsedMs)
		}
	case EventRoofCracked:
		if h.OnRoofCracked != nil {
			h.OnRoofCracked()
		}
	}
}
