package utils

import (
	"net/http"
)

// DetectMimeType returns the MIME type for a content sample using
// http.DetectContentType. An empty sample yields an empty string.
func DetectMimeType(sample []byte) string {
	if len(sample) == 0 {
		return ""
	}
	return http.DetectContentType(sample)
}
