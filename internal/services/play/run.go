package play

import (
	"sync"

	"github.com/Jeet1511/EliteZero/internal/dependencies/clock"
	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/games"
)

// run is the live wrapper of one session
type run struct {
	mu sync.Mutex

	session *model.Session
	// machine is nil while a challenge is waiting for an answer
	machine games.Machine
	// challenged is the invited player of a waiting multiplayer session
	challenged model.PlayerID

	ticks    map[string]clock.Timer
	deadline clock.Timer
	// deadlineGen invalidates a deadline timer that fired after being replaced
	deadlineGen int
	done        bool
}

func newRun(sess *model.Session) *run {
	return &run{session: sess, ticks: make(map[string]clock.Timer)}
}

// expects reports whether the machine accepts input from id right now
func (r *run) expects(id model.PlayerID) bool {
	for _, p := range r.machine.ExpectedActors() {
		if p == id {
			return true
		}
	}
	return false
}

// stopTimers cancels every pending timer of the run
func (r *run) stopTimers() {
	for kind, t := range r.ticks {
		t.Stop()
		delete(r.ticks, kind)
	}
	if r.deadline != nil {
		r.deadline.Stop()
		r.deadline = nil
	}
	r.deadlineGen++
}
