package model

import "testing"

func TestFeeScheduleValidate(t *testing.T) {
	tests := []struct {
		name    string
		sched   FeeSchedule
		wantErr bool
	}{
		{name: "defaults", sched: *DefaultFeeSchedule(), wantErr: false},
		{name: "zero stages", sched: FeeSchedule{PembangunanStages: 0}, wantErr: true},
		{name: "too many stages", sched: FeeSchedule{PembangunanStages: MaxPembangunanStages + 1}, wantErr: true},
		{
			name: "unknown fee toggle",
			sched: FeeSchedule{
				PembangunanStages: 1,
				EnabledFees:       map[FeeKind]bool{"spp": true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sched.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestFeeEnabled(t *testing.T) {
	sched := &FeeSchedule{
		PembangunanStages: 2,
		EnabledFees:       map[FeeKind]bool{FeeCatering: true},
	}

	tests := []struct {
		kind FeeKind
		want bool
	}{
		{FeePembangunan1, true},
		{FeePembangunan2, true},
		{FeePembangunan3, false},
		{FeeCatering, true},
		{FeeSeragam, false},
		{FeeLainnya, false},
	}
	for _, tt := range tests {
		if got := sched.FeeEnabled(tt.kind); got != tt.want {
			t.Errorf("FeeEnabled(%s) = %t, want %t", tt.kind, got, tt.want)
		}
	}
}

func TestPaymentTypeFeeKind(t *testing.T) {
	if kind, ok := PaymentManual.FeeKind(); !ok || kind != FeeLainnya {
		t.Errorf("Manual should map to lainnya, got %s ok=%t", kind, ok)
	}
	if _, ok := PaymentSPP.FeeKind(); ok {
		t.Error("SPP has no fee bucket")
	}
	if stage := PaymentPembangunan3.PembangunanStage(); stage != 3 {
		t.Errorf("PembangunanStage() = %d, want 3", stage)
	}
	if stage := PaymentCatering.PembangunanStage(); stage != 0 {
		t.Errorf("PembangunanStage() = %d, want 0", stage)
	}
}
