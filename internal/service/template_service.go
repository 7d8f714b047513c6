// internal/service/template_service.go
package service

import (
	"html"
	"strings"
)

// TimeTemplate is the HTML fragment served for the current time.
const TimeTemplate = "<h1>The current time is {time}</h1>"

// RenderTemplate replaces every {key} in template with the HTML-escaped
// data[key]. Placeholders without data are left untouched.
func RenderTemplate(template string, data map[string]string) string {
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", html.EscapeString(v))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
