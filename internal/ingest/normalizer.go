package ingest

import (
	"strings"
	"time"

	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/source"
)

const (
	nytimesImageBase = "https://www.nytimes.com/"
	redditBase       = "https://www.reddit.com"
)

// Normalize maps one raw provider payload into the unified article. It is a
// pure function: no id is assigned until persistence.
func Normalize(item source.RawItem) domain.Article {
	switch {
	case item.Guardian != nil:
		return normalizeGuardian(item.Guardian)
	case item.NYTimes != nil:
		return normalizeNYTimes(item.NYTimes)
	case item.Reddit != nil:
		return normalizeReddit(item.Reddit)
	default:
		return domain.Article{HostOrigin: domain.UnknownHost}
	}
}

func NormalizeAll(items []source.RawItem) []domain.Article {
	out := make([]domain.Article, 0, len(items))
	for _, item := range items {
		out = append(out, Normalize(item))
	}
	return out
}

func normalizeGuardian(r *source.GuardianResult) domain.Article {
	return domain.Article{
		Source:          domain.SourceGuardian,
		Title:           r.WebTitle,
		URL:             r.WebURL,
		PublicationDate: r.WebPublicationDate,
		HostOrigin:      HostOrigin(r.WebURL),
		Description:     stripTags(r.Fields.TrailText),
	}
}

func normalizeNYTimes(d *source.NYTimesDoc) domain.Article {
	return domain.Article{
		Source:          domain.SourceNYTimes,
		Title:           d.Headline.Main,
		URL:             d.WebURL,
		PublicationDate: d.PubDate,
		HostOrigin:      HostOrigin(d.WebURL),
		Description:     d.Abstract,
		Author:          d.Byline.Original,
		Image:           absoluteNYTimesImage(d.Multimedia.URL),
	}
}

func normalizeReddit(p *source.RedditPost) domain.Article {
	link := ""
	if p.Permalink != "" {
		link = redditBase + p.Permalink
	}

	host := p.URL
	if host == "" {
		host = link
	}

	published := ""
	if p.CreatedUTC > 0 {
		published = time.Unix(int64(p.CreatedUTC), 0).UTC().Format(time.RFC3339)
	}

	return domain.Article{
		Source:          domain.SourceReddit,
		Title:           p.Title,
		URL:             p.URL,
		Link:            link,
		PublicationDate: published,
		HostOrigin:      HostOrigin(host),
		Author:          p.Author,
		Description:     p.Selftext,
		Image:           httpOnly(p.Thumbnail),
		CommunityTag:    p.Subreddit,
	}
}

func absoluteNYTimesImage(u string) string {
	if u == "" || strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return nytimesImageBase + strings.TrimPrefix(u, "/")
}

// Reddit uses placeholders such as "self" or "default" instead of a thumbnail URL.
func httpOnly(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return ""
}

func stripTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
