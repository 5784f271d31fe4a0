package common

const (
	// RequestIDHeaderName carries a per-request id for correlating client
	// and backend logs.
	RequestIDHeaderName = "X-Request-ID"

	// ContentTypeJSON is sent with every JSON request body.
	ContentTypeJSON = "application/json"

	// ContentTypePDF is the only resume type accepted for upload.
	ContentTypePDF = "application/pdf"

	// MaxResumeSize is the largest resume accepted for upload (5 MiB).
	MaxResumeSize int64 = 5 * 1024 * 1024
)
