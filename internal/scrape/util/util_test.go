package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Software Engineer", "Software Engineer"},
		{"  Software \n\t  Engineer  ", "Software Engineer"},
		{"Acme,  Inc.", "Acme, Inc."},
		{"\n  2 days\r\n ago \n", "2 days ago"},
		{"\u00a0Remote\u00a0\u00a0(US)\u00a0", "Remote (US)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanText(tt.in), "CleanText(%q)", tt.in)
	}
}

func TestContainsAny(t *testing.T) {
	phrases := []string{"work here", "works here"}

	assert.True(t, ContainsAny("3 connections work here", phrases))
	assert.True(t, ContainsAny("1 connection works here", phrases))
	assert.False(t, ContainsAny("Be an early applicant", phrases))
	// match is case-sensitive
	assert.False(t, ContainsAny("3 connections WORK HERE", phrases))
	assert.False(t, ContainsAny("anything", []string{""}))
}

func TestResolveURL(t *testing.T) {
	base := ParseBase("https://www.linkedin.com/jobs/search/?keywords=go")

	got, ok := ResolveURL(base, "/jobs/view/123/?refId=abc")
	assert.True(t, ok)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/123/?refId=abc", got)

	got, ok = ResolveURL(base, "https://x.com/job/1")
	assert.True(t, ok)
	assert.Equal(t, "https://x.com/job/1", got)

	got, ok = ResolveURL(nil, "https://x.com/job/1")
	assert.True(t, ok)
	assert.Equal(t, "https://x.com/job/1", got)

	_, ok = ResolveURL(nil, "/jobs/view/123")
	assert.False(t, ok)

	// empty href points back at the document, fragment dropped
	got, ok = ResolveURL(ParseBase("https://www.linkedin.com/jobs/search/?keywords=go#top"), "   ")
	assert.True(t, ok)
	assert.Equal(t, "https://www.linkedin.com/jobs/search/?keywords=go", got)

	_, ok = ResolveURL(nil, "")
	assert.False(t, ok)

	_, ok = ResolveURL(base, "http://[::1")
	assert.False(t, ok)
}

func TestParseBase(t *testing.T) {
	assert.NotNil(t, ParseBase("https://www.linkedin.com/"))
	assert.Nil(t, ParseBase(""))
	assert.Nil(t, ParseBase("/relative"))
}
