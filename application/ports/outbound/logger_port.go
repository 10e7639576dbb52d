package outbound

// LoggerPort is the structured logger the services log through. Field maps
// carry the request-scoped context (link id, owner, url); Error is the only
// plain variant since most failure sites already hold an error value.
type LoggerPort interface {
	Error(err error, msg string)
	ErrorWithFields(err error, msg string, fields map[string]interface{})
	WarnWithFields(msg string, fields map[string]interface{})
	InfoWithFields(msg string, fields map[string]interface{})
	DebugWithFields(msg string, fields map[string]interface{})
}
