// Package hardware reflects task status changes onto an RGB LED. The sink is
// best-effort: callers log and swallow its errors, and off-hardware the nop
// implementation is used.
package hardware

// StatusSink receives the new status after a task changes.
type StatusSink interface {
	SetStatus(status int) error
	Close() error
}

// ColorForStatus maps a task status to the LED color shown for it.
func ColorForStatus(status int) string {
	switch status {
	case 0:
		return "red"
	case 1:
		return "yellow"
	case 2:
		return "green"
	}
	return "off"
}

// NopSink is the off-hardware StatusSink.
type NopSink struct{}

func (NopSink) SetStatus(int) error { return nil }
func (NopSink) Close() error        { return nil }
