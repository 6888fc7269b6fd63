package utils

// HTTP Header Constants
const (
	// Standard HTTP Headers
	HeaderContentType = "Content-Type"
	HeaderUserAgent   = "User-Agent"

	// Request/Response Tracking Headers
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"

	// Client IP Headers (priority order)
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXRealIP        = "X-Real-IP"
	HeaderCFConnectingIP = "CF-Connecting-IP"
	HeaderCloudFlareRay  = "cf-ray"

	// CORS Headers
	HeaderAccessControlAllowOrigin      = "Access-Control-Allow-Origin"
	HeaderAccessControlAllowMethods     = "Access-Control-Allow-Methods"
	HeaderAccessControlAllowHeaders     = "Access-Control-Allow-Headers"
	HeaderAccessControlAllowCredentials = "Access-Control-Allow-Credentials"
	HeaderAccessControlExposeHeaders    = "Access-Control-Expose-Headers"
)

// Content Type Constants
const (
	ContentTypeJSON = "application/json"
)

// CORS Values
const (
	CORSAllowOriginAll   = "*"
	CORSAllowMethodsAll  = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	CORSAllowHeadersAll  = "*"
	CORSAllowCredentials = "true"
	CORSExposeHeadersStd = "X-Request-ID, X-Correlation-ID"
)

// MaxLoggedStringLength bounds string values copied into log entries.
const MaxLoggedStringLength = 200
