// Package static holds the HTML pages served by the service.
package static

import (
	"embed"
)

//go:embed pages/*.html
var pages embed.FS

func mustRead(name string) []byte {
	data, err := pages.ReadFile("pages/" + name)
	if err != nil {
		panic(err)
	}
	return data
}

var (
	indexPage    = mustRead("index.html")
	notFoundPage = mustRead("404.html")
)

// IndexPage is the landing page with the shorten, update and delete forms.
func IndexPage() []byte { return indexPage }

// NotFoundPage is shown when a short link does not resolve.
func NotFoundPage() []byte { return notFoundPage }
