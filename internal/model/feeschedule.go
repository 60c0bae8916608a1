package model

import "fmt"

// FeeKind identifies a one-off fee bucket on a student record.
type FeeKind string

const (
	FeePembangunan1 FeeKind = "pembangunan1"
	FeePembangunan2 FeeKind = "pembangunan2"
	FeePembangunan3 FeeKind = "pembangunan3"
	FeeCatering     FeeKind = "catering"
	FeeSeragam      FeeKind = "seragam"
	FeeBuku         FeeKind = "buku"
	FeeLainnya      FeeKind = "lainnya"
)

// OptionalFeeOrder is the canonical display order of the toggleable fee kinds.
var OptionalFeeOrder = []FeeKind{FeeCatering, FeeSeragam, FeeBuku, FeeLainnya}

// PembangunanKind returns the fee kind for a development fee stage (1..3).
func PembangunanKind(stage int) FeeKind {
	return FeeKind(fmt.Sprintf("pembangunan%d", stage))
}

// FeeLabel returns the display label used in grids and CSV headers.
func FeeLabel(kind FeeKind) string {
	switch kind {
	case FeePembangunan1:
		return "Pmb 1"
	case FeePembangunan2:
		return "Pmb 2"
	case FeePembangunan3:
		return "Pmb 3"
	case FeeCatering:
		return "Catering"
	case FeeSeragam:
		return "Seragam"
	case FeeBuku:
		return "Buku"
	case FeeLainnya:
		return "Lainnya"
	}
	return string(kind)
}

// MaxPembangunanStages is the hard upper bound on development fee installments.
const MaxPembangunanStages = 3

// FeeSchedule is the per-institution fee configuration. It is loaded from the
// settings table and treated as immutable for the duration of a request.
type FeeSchedule struct {
	// UseNIS controls whether the NIS field is required on students and
	// part of the CSV column set.
	UseNIS bool `json:"use_nis"`
	// PembangunanStages is how many development fee installments this
	// institution charges (1..3).
	PembangunanStages int `json:"pembangunan_stages"`
	// EnabledFees toggles the optional fee kinds.
	EnabledFees map[FeeKind]bool `json:"enabled_fees"`
}

// DefaultFeeSchedule returns the schedule used when no settings are persisted.
func DefaultFeeSchedule() *FeeSchedule {
	return &FeeSchedule{
		UseNIS:            false,
		PembangunanStages: 2,
		EnabledFees: map[FeeKind]bool{
			FeeCatering: true,
			FeeSeragam:  true,
			FeeBuku:     false,
			FeeLainnya:  true,
		},
	}
}

// Validate rejects schedules that would make fee columns unaddressable.
func (f *FeeSchedule) Validate() error {
	if f.PembangunanStages < 1 || f.PembangunanStages > MaxPembangunanStages {
		return fmt.Errorf("pembangunan_stages must be 1..%d, got %d", MaxPembangunanStages, f.PembangunanStages)
	}
	for kind := range f.EnabledFees {
		if !isOptionalFee(kind) {
			return fmt.Errorf("unknown optional fee kind %q", kind)
		}
	}
	return nil
}

// FeeEnabled reports whether a fee kind is active under this schedule.
// Pembangunan kinds are bounded by PembangunanStages; optional kinds by the
// EnabledFees toggles.
func (f *FeeSchedule) FeeEnabled(kind FeeKind) bool {
	for stage := 1; stage <= f.PembangunanStages; stage++ {
		if kind == PembangunanKind(stage) {
			return true
		}
	}
	return isOptionalFee(kind) && f.EnabledFees[kind]
}

func isOptionalFee(kind FeeKind) bool {
	for _, k := range OptionalFeeOrder {
		if k == kind {
			return true
		}
	}
	return false
}

// Settings table keys for the persisted schedule.
const (
	SettingUseNIS            = "fee.use_nis"
	SettingPembangunanStages = "fee.pembangunan_stages"
	SettingEnabledFees       = "fee.enabled_fees" // JSON object of FeeKind -> bool
)
