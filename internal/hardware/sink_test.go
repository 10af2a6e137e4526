package hardware

import "testing"

func TestColorForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{0, "red"},
		{1, "yellow"},
		{2, "green"},
		{3, "off"},
		{-1, "off"},
	}
	for _, tc := range tests {
		if got := ColorForStatus(tc.status); got != tc.want {
			t.Errorf("ColorForStatus(%d) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestNopSink(t *testing.T) {
	var sink StatusSink = NopSink{}
	if err := sink.SetStatus(1); err != nil {
		t.Errorf("SetStatus: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
