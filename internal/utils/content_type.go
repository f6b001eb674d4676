package utils

import (
	"mime"
	"strings"
)

// IsTextContentType reports whether a response with this Content-Type is readable text:
// text/*, JSON or XML in UTF-8 or ASCII. File hosts send such bodies for error and login pages.
func IsTextContentType(contentType string) bool {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	isText := strings.HasPrefix(mediaType, "text/") && len(mediaType) > len("text/") ||
		mediaType == "application/json" ||
		mediaType == "application/xml" ||
		strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+xml")
	if !isText {
		return false
	}

	switch strings.ToLower(params["charset"]) {
	case "", "utf-8", "us-ascii":
		return true
	default:
		return false
	}
}
