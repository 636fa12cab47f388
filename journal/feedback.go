package journal

import "log/slog"

// Feedback is the sensory-cue collaborator: the mobile app plays a success
// or failure sound after every call. The client invokes it on a separate
// goroutine after classifying each outcome, so an implementation can never
// block or fail the underlying operation. Implementations must be safe for
// concurrent use.
type Feedback interface {
	Success()
	Failure()
}

// NopFeedback discards all cues. It is the default sink.
type NopFeedback struct{}

func (NopFeedback) Success() {}
func (NopFeedback) Failure() {}

// LogFeedback renders cues as structured log lines, the headless analog of
// the app's audio feedback, with distinct signals for success and failure.
type LogFeedback struct {
	Logger *slog.Logger
}

func (f LogFeedback) Success() { f.logger().Debug("operation succeeded") }
func (f LogFeedback) Failure() { f.logger().Warn("operation failed") }

func (f LogFeedback) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.Default()
}

var (
	_ Feedback = NopFeedback{}
	_ Feedback = LogFeedback{}
)
