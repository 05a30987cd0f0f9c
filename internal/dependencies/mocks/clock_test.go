package mocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type MockClockSuite struct {
	suite.Suite
	clock *MockClock
	start time.Time
}

func TestMockClockSuite(t *testing.T) {
	suite.Run(t, new(MockClockSuite))
}

func (s *MockClockSuite) SetupTest() {
	s.start = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.clock = NewMockClock(s.start)
}

func (s *MockClockSuite) TestAdvanceFiresDueTimersInOrder() {
	var fired []string
	s.clock.AfterFunc(2*time.Second, func() { fired = append(fired, "second") })
	s.clock.AfterFunc(time.Second, func() { fired = append(fired, "first") })
	s.clock.AfterFunc(time.Minute, func() { fired = append(fired, "late") })

	s.clock.Advance(5 * time.Second)

	s.Equal([]string{"first", "second"}, fired)
	s.Equal(s.start.Add(5*time.Second), s.clock.Now())
	s.Equal(1, s.clock.PendingTimers())
}

func (s *MockClockSuite) TestStoppedTimerDoesNotFire() {
	fired := false
	t := s.clock.AfterFunc(time.Second, func() { fired = true })

	s.True(t.Stop())
	s.False(t.Stop())
	s.clock.Advance(time.Minute)

	s.False(fired)
}

func (s *MockClockSuite) TestCallbackSeesDeadlineTime() {
	var seen time.Time
	s.clock.AfterFunc(3*time.Second, func() { seen = s.clock.Now() })

	s.clock.Advance(10 * time.Second)

	s.Equal(s.start.Add(3*time.Second), seen)
}

func (s *MockClockSuite) TestTimerRegisteredByCallbackFiresInSameAdvance() {
	count := 0
	s.clock.AfterFunc(time.Second, func() {
		count++
		s.clock.AfterFunc(time.Second, func() { count++ })
	})

	s.clock.Advance(5 * time.Second)

	s.Equal(2, count)
}
