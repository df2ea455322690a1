package service

// 錯誤代碼，handler 依此決定 HTTP 狀態碼
const (
	CodeValidation         = "VALIDATION"
	CodeIDMismatch         = "ID_MISMATCH"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodePersistence        = "PERSISTENCE"
)
