package logging

import "regexp"

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?1?[-.\s]?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)
)

// Redact replaces email addresses with [EMAIL] and phone numbers with
// [PHONE]. Used on third-party error text before it reaches the log.
func Redact(text string) string {
	text = emailRe.ReplaceAllString(text, "[EMAIL]")
	return phoneRe.ReplaceAllString(text, "[PHONE]")
}

// RedactError is Redact for an error value. Nil yields "".
func RedactError(err error) string {
	if err == nil {
		return ""
	}
	return Redact(err.Error())
}
