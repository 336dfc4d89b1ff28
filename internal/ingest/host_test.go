package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostOrigin(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "www prefixed", in: "https://www.theguardian.com/a/b", want: "theguardian"},
		{name: "empty", in: "", want: "Unknown"},
		{name: "no protocol subdomain", in: "sub.example.com", want: "example"},
		{name: "two labels", in: "https://nytimes.com/2024/01/01/x.html", want: "nytimes"},
		{name: "port stripped", in: "http://api.example.com:8080/path", want: "example"},
		{name: "query stripped", in: "https://i.redd.it?x=1", want: "redd"},
		{name: "co.uk heuristic", in: "https://www.bbc.co.uk/news", want: "co"},
		{name: "single label", in: "http://localhost:3000", want: "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HostOrigin(tt.in))
		})
	}
}
