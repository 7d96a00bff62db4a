package errors

// ErrorCode identifies an application error category in responses and logs.
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_PERMISSION_DENIED
	ErrorCode_UNAUTHENTICATED
	ErrorCode_FORBIDDEN

	ErrorCode_AUTH_INVALID_TOKEN
	ErrorCode_AUTH_TOKEN_EXPIRED
	ErrorCode_AUTH_INVALID_CREDENTIALS
	ErrorCode_AUTH_USER_NOT_FOUND
	ErrorCode_AUTH_USER_ALREADY_EXISTS
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN
	ErrorCode_AUTH_OAUTH_FAILED
	ErrorCode_AUTH_2FA_REQUIRED
	ErrorCode_AUTH_2FA_CODE_INVALID
	ErrorCode_AUTH_2FA_CODE_EXPIRED
	ErrorCode_AUTH_2FA_SEND_FAILED

	ErrorCode_CHAT_COMPLETION_FAILED
	ErrorCode_CHAT_EMPTY_CONVERSATION

	ErrorCode_HISTORY_NOT_FOUND
	ErrorCode_HISTORY_STORE_FAILED

	ErrorCode_BILLING_PLAN_NOT_FOUND
	ErrorCode_BILLING_NO_CUSTOMER
	ErrorCode_BILLING_WEBHOOK_INVALID
	ErrorCode_BILLING_PROVIDER_FAILED

	ErrorCode_CALENDAR_NOT_CONNECTED

	ErrorCode_REPORT_EXPORT_FAILED
	ErrorCode_INTEGRATION_STORAGE_FAILED
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED

	ErrorCode_DB_CONNECTION_FAILED
	ErrorCode_DB_QUERY_FAILED

	ErrorCode_INVALID_PAYLOAD
	ErrorCode_HTTP_OK
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                        "UNKNOWN",
	ErrorCode_INTERNAL:                       "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:               "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                      "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:                 "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:              "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:                "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                      "FORBIDDEN",
	ErrorCode_AUTH_INVALID_TOKEN:             "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:             "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_CREDENTIALS:       "AUTH_INVALID_CREDENTIALS",
	ErrorCode_AUTH_USER_NOT_FOUND:            "AUTH_USER_NOT_FOUND",
	ErrorCode_AUTH_USER_ALREADY_EXISTS:       "AUTH_USER_ALREADY_EXISTS",
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN:     "AUTH_INVALID_REFRESH_TOKEN",
	ErrorCode_AUTH_OAUTH_FAILED:              "AUTH_OAUTH_FAILED",
	ErrorCode_AUTH_2FA_REQUIRED:              "AUTH_2FA_REQUIRED",
	ErrorCode_AUTH_2FA_CODE_INVALID:          "AUTH_2FA_CODE_INVALID",
	ErrorCode_AUTH_2FA_CODE_EXPIRED:          "AUTH_2FA_CODE_EXPIRED",
	ErrorCode_AUTH_2FA_SEND_FAILED:           "AUTH_2FA_SEND_FAILED",
	ErrorCode_CHAT_COMPLETION_FAILED:         "CHAT_COMPLETION_FAILED",
	ErrorCode_CHAT_EMPTY_CONVERSATION:        "CHAT_EMPTY_CONVERSATION",
	ErrorCode_HISTORY_NOT_FOUND:              "HISTORY_NOT_FOUND",
	ErrorCode_HISTORY_STORE_FAILED:           "HISTORY_STORE_FAILED",
	ErrorCode_BILLING_PLAN_NOT_FOUND:         "BILLING_PLAN_NOT_FOUND",
	ErrorCode_BILLING_NO_CUSTOMER:            "BILLING_NO_CUSTOMER",
	ErrorCode_BILLING_WEBHOOK_INVALID:        "BILLING_WEBHOOK_INVALID",
	ErrorCode_BILLING_PROVIDER_FAILED:        "BILLING_PROVIDER_FAILED",
	ErrorCode_CALENDAR_NOT_CONNECTED:         "CALENDAR_NOT_CONNECTED",
	ErrorCode_REPORT_EXPORT_FAILED:           "REPORT_EXPORT_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:     "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:           "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:                "DB_QUERY_FAILED",
	ErrorCode_INVALID_PAYLOAD:                "INVALID_PAYLOAD",
	ErrorCode_HTTP_OK:                        "HTTP_OK",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
