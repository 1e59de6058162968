package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	page *Page
	err  error
	got  string
}

func (s *stubFetcher) Fetch(_ context.Context, rawURL string) (*Page, error) {
	s.got = rawURL
	return s.page, s.err
}

func TestScraper_Scrape(t *testing.T) {
	fetcher := &stubFetcher{page: &Page{
		Body:       `<html><title>Acme</title><body><a href="/fb">x</a><a href="https://twitter.com/acme">t</a></body></html>`,
		FinalURL:   "https://www.acme.test/",
		StatusCode: 200,
	}}

	site, err := New(fetcher, nil).Scrape(context.Background(), "http://acme.test")
	require.NoError(t, err)

	assert.Equal(t, "http://acme.test", fetcher.got)
	assert.Equal(t, "Acme", site.Title)
	assert.Equal(t, "https://www.acme.test/", site.FinalURL)
	assert.Equal(t, []string{"https://twitter.com/acme"}, site.SocialLinks)
}

func TestScraper_PropagatesFetchErrors(t *testing.T) {
	fetchErr := &FetchError{URL: "https://down.test", Err: errors.New("no such host")}
	_, err := New(&stubFetcher{err: fetchErr}, nil).Scrape(context.Background(), "https://down.test")

	assert.ErrorIs(t, err, fetchErr)
}
