package app_test

import (
	"io"
	"strings"
)

func stringsReader(s string) io.Reader { return strings.NewReader(s) }

func ptr[T any](v T) *T { return &v }
