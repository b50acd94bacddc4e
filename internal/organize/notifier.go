package organize

// Notifier receives progress events during a run. Implementations must be
// cheap; the engine calls RowDone after every row. A nil Notifier is valid
// and disables notifications.
type Notifier interface {
	// RowDone reports that done of total rows have finished processing.
	RowDone(done, total int)
	// Status reports a human-readable processing milestone.
	Status(message string)
}

type nopNotifier struct{}

func (nopNotifier) RowDone(int, int) {}

func (nopNotifier) Status(string) {}
