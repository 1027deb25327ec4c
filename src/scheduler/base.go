package scheduler

import (
	"github.com/robfig/cron/v3"
)

// ScheduledTask runs a function on a cron schedule, optionally firing it
// once immediately. It owns its own cron instance so the caller controls
// the full lifecycle with Cancel.
type ScheduledTask struct {
	cronID cron.EntryID
	cron   *cron.Cron
	cancel chan struct{}
}

// NewScheduledTask registers taskFunc under cronSpec and starts the cron
// loop. With runAtStart the task also fires once right away, in its own
// goroutine so startup is not blocked.
func NewScheduledTask(cronSpec string, runAtStart bool, taskFunc func()) (*ScheduledTask, error) {
	c := cron.New()
	cancel := make(chan struct{})
	task := &ScheduledTask{
		cron:   c,
		cancel: cancel,
	}

	guarded := func() {
		select {
		case <-cancel:
			return
		default:
			taskFunc()
		}
	}

	id, err := c.AddFunc(cronSpec, guarded)
	if err != nil {
		return nil, err
	}

	task.cronID = id
	c.Start()
	if runAtStart {
		go guarded()
	}
	return task, nil
}

// Cancel stops the schedule; an already running invocation is not
// interrupted.
func (s *ScheduledTask) Cancel() {
	s.cron.Remove(s.cronID)
	close(s.cancel)
}
