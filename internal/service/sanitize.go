package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips all markup from user-supplied free text before it is
// stored. Card faces, set names, descriptions and report/ban reasons are
// plain text in this system.
var textPolicy = bluemonday.StrictPolicy()

func sanitizeText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}
