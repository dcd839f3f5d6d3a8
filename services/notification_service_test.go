package services

import (
	"testing"

	"github.com/robfig/cron/v3"
)

func TestDailyReminderScheduleParses(t *testing.T) {
	if _, err := cron.ParseStandard(dailyReminderSchedule); err != nil {
		t.Fatalf("schedule %q does not parse: %v", dailyReminderSchedule, err)
	}
}
