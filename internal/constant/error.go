package constant

const (
	ERR_INVALID_REQUEST_BODY_ERROR_CODE = "INVALID_REQUEST_BODY_ERROR"
	ERR_INVALID_REQUEST_BODY_MESSAGE    = "The request is invalid or malformed"
	ERR_UNAUTHORIZED_ERROR              = "UNAUTHORIZED_ERROR"
	ERR_INTERNAL_SERVER_ERROR_MESSAGE   = "Something went wrong. If the problem persists, please contact support"
	ERR_RATE_LIMIT_MESSAGE              = "Rate limit exceeded, please try again later"
	STATUS_OK                           = "OK"
	STATUS_PARTIAL                      = "PARTIAL"
)
