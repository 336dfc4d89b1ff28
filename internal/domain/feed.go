package domain

import "math"

// FeedArticle is the client-facing element of the unified feed.
type FeedArticle struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Source          Source  `json:"source"`
	PublicationDate string  `json:"publicationDate"`
	URL             string  `json:"url"`
	Description     string  `json:"description"`
	Author          string  `json:"author"`
	Image           string  `json:"image"`
	CommunityTag    string  `json:"communityTag"`
	Link            string  `json:"link"`
	HostOrigin      string  `json:"hostOrigin"`
	Sentiment       float64 `json:"sentiment"`
}

func NewFeedArticle(a Article, sentiment float64) FeedArticle {
	if math.IsNaN(sentiment) || math.IsInf(sentiment, 0) {
		sentiment = 0
	}
	return FeedArticle{
		ID:              a.ID.String(),
		Title:           a.Title,
		Source:          a.Source,
		PublicationDate: a.PublicationDate,
		URL:             a.URL,
		Description:     a.Description,
		Author:          a.Author,
		Image:           a.Image,
		CommunityTag:    a.CommunityTag,
		Link:            a.Link,
		HostOrigin:      a.HostOrigin,
		Sentiment:       sentiment,
	}
}

type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}
