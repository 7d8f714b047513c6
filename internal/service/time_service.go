// internal/service/time_service.go
package service

import "time"

// TimeLayout matches the classic Unix date output, e.g.
// "Sun Oct 18 09:30:00 UTC 2026".
const TimeLayout = "Mon Jan 02 15:04:05 MST 2006"

// TimeService reports the current time. Now defaults to time.Now.
type TimeService struct {
	Now func() time.Time
}

func (s *TimeService) GetTime() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().Format(TimeLayout)
}
