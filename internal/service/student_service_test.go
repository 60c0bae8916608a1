package service

import (
	"errors"
	"testing"
)

func TestValidateStudentNIS(t *testing.T) {
	tests := []struct {
		name    string
		useNIS  bool
		nis     string
		wantErr error
	}{
		{name: "nis present while required", useNIS: true, nis: "2024001", wantErr: nil},
		{name: "nis empty while required", useNIS: true, nis: "", wantErr: ErrNISRequired},
		{name: "nis whitespace while required", useNIS: true, nis: "   ", wantErr: ErrNISRequired},
		{name: "nis empty while not tracked", useNIS: false, nis: "", wantErr: nil},
		{name: "nis present while not tracked", useNIS: false, nis: "2024001", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := testSchedule()
			sched.UseNIS = tt.useNIS
			if err := validateStudentNIS(sched, tt.nis); !errors.Is(err, tt.wantErr) {
				t.Errorf("validateStudentNIS() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
