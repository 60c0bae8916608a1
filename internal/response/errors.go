package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrAuthExchangeFailed ErrCode = "AUTH_EXCHANGE_FAILED"
	ErrAdminNotRegistered ErrCode = "ADMIN_NOT_REGISTERED"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrNISRequired    ErrCode = "NIS_REQUIRED"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Payments ──────────────────────────────────────────────────────
	ErrMonthRequired       ErrCode = "MONTH_REQUIRED"
	ErrCustomLabelRequired ErrCode = "CUSTOM_LABEL_REQUIRED"
	ErrStageNotConfigured  ErrCode = "STAGE_NOT_CONFIGURED"

	// ─── Recap ─────────────────────────────────────────────────────────
	ErrDataIntegrity ErrCode = "DATA_INTEGRITY"

	// ─── CSV Import ────────────────────────────────────────────────────
	ErrFileRequired       ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile    ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge       ErrCode = "FILE_TOO_LARGE"
	ErrCSVParseFailed     ErrCode = "CSV_PARSE_FAILED"
	ErrImportBatchMissing ErrCode = "IMPORT_BATCH_NOT_FOUND"
	ErrImportHasErrors    ErrCode = "IMPORT_HAS_ERRORS"
	ErrImportWrongState   ErrCode = "IMPORT_INVALID_STATE"
	ErrImportEmpty        ErrCode = "IMPORT_EMPTY"

	// ─── Settings ──────────────────────────────────────────────────────
	ErrInvalidSchedule ErrCode = "INVALID_FEE_SCHEDULE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email atau kata sandi salah."
	case ErrAuthExchangeFailed:
		return "Login gagal. Silakan coba masuk kembali."
	case ErrAdminNotRegistered:
		return "Akun ini belum terdaftar sebagai pengurus."
	case ErrSessionInvalidated:
		return "Sesi Anda telah berakhir. Silakan login kembali."
	case ErrTokenRequired:
		return "Token autentikasi diperlukan."
	case ErrTokenInvalid:
		return "Token autentikasi tidak valid."
	case ErrTokenExpired:
		return "Token autentikasi telah kedaluwarsa."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Anda tidak memiliki izin untuk mengakses sumber daya ini."
	case ErrPermissionDenied:
		return "Izin ditolak."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validasi gagal. Silakan periksa masukan Anda."
	case ErrInvalidID:
		return "Format ID tidak valid."
	case ErrInvalidPayload:
		return "Payload permintaan tidak valid."
	case ErrNISRequired:
		return "NIS wajib diisi untuk lembaga Anda."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Sumber daya tidak ditemukan."
	case ErrConflict:
		return "Sumber daya sudah ada."

	// ─── Payments ──────────────────────────────────────────────────────
	case ErrMonthRequired:
		return "Pembayaran SPP memerlukan bulan (1-12)."
	case ErrCustomLabelRequired:
		return "Jenis pembayaran manual memerlukan nama tagihan."
	case ErrStageNotConfigured:
		return "Tahap pembangunan ini tidak tersedia untuk lembaga Anda."

	// ─── Recap ─────────────────────────────────────────────────────────
	case ErrDataIntegrity:
		return "Data pembayaran bulanan tidak konsisten. Hubungi administrator."

	// ─── CSV Import ────────────────────────────────────────────────────
	case ErrFileRequired:
		return "Unggah file diperlukan."
	case ErrUnsupportedFile:
		return "Jenis file tidak didukung. Gunakan file CSV."
	case ErrFileTooLarge:
		return "Ukuran file melebihi batas."
	case ErrCSVParseFailed:
		return "File CSV tidak sesuai template."
	case ErrImportBatchMissing:
		return "Sesi impor tidak ditemukan atau sudah kedaluwarsa."
	case ErrImportHasErrors:
		return "Masih ada baris dengan status error. Perbaiki file lalu unggah ulang."
	case ErrImportWrongState:
		return "Tindakan ini tidak sesuai dengan tahap impor saat ini."
	case ErrImportEmpty:
		return "File tidak berisi data siswa."

	// ─── Settings ──────────────────────────────────────────────────────
	case ErrInvalidSchedule:
		return "Konfigurasi biaya tidak valid."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Terlalu banyak permintaan. Silakan coba lagi nanti."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Terjadi kesalahan server internal."
	default:
		return "Terjadi kesalahan yang tidak terduga."
	}
}
