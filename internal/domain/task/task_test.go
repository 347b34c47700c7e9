package task

import "testing"

func TestParseStatus_IsExact(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{in: "pending", want: StatusPending},
		{in: "in-progress", want: StatusInProgress},
		{in: "done", want: StatusDone},
		{in: "DONE", wantErr: true},
		{in: "Done", wantErr: true},
		{in: " done", wantErr: true},
		{in: "in_progress", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if tt.wantErr {
			if err != ErrInvalidStatus {
				t.Errorf("ParseStatus(%q) err = %v, want ErrInvalidStatus", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestListFilter_Matches(t *testing.T) {
	done := StatusDone
	search := "MILK"

	tk := Task{Title: "Buy milk", Status: StatusDone}

	if !(ListFilter{Status: &done, Search: &search}).Matches(tk) {
		t.Fatalf("expected status and case-insensitive title match")
	}

	pending := StatusPending
	if (ListFilter{Status: &pending}).Matches(tk) {
		t.Fatalf("pending filter matched a done task")
	}
}
