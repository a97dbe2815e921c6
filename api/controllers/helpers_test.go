package controllers

import (
	"io"
	"strings"
)

func jsonBody(payload string) io.Reader {
	return strings.NewReader(payload)
}
