package source

import (
	"context"
	"encoding/json"

	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
)

// Fetcher pulls every raw item a provider returns for a query. A fetch is
// all-or-nothing: on error no items are returned.
type Fetcher interface {
	Source() domain.Source
	FetchAll(ctx context.Context, query string) (*Batch, error)
}

// Batch is the result of one fetch. TotalResults is the upstream-reported
// count when the provider reports one, else the number of items.
type Batch struct {
	Items        []RawItem
	TotalResults int
}

// RawItem carries exactly one provider payload.
type RawItem struct {
	Guardian *GuardianResult
	NYTimes  *NYTimesDoc
	Reddit   *RedditPost
}

type GuardianResult struct {
	ID                 string `json:"id"`
	SectionName        string `json:"sectionName"`
	WebTitle           string `json:"webTitle"`
	WebURL             string `json:"webUrl"`
	WebPublicationDate string `json:"webPublicationDate"`
	Fields             struct {
		TrailText string `json:"trailText"`
		Thumbnail string `json:"thumbnail"`
	} `json:"fields"`
}

type NYTimesDoc struct {
	WebURL   string `json:"web_url"`
	Abstract string `json:"abstract"`
	PubDate  string `json:"pub_date"`
	Headline struct {
		Main string `json:"main"`
	} `json:"headline"`
	Byline struct {
		Original string `json:"original"`
	} `json:"byline"`
	Multimedia NYTimesMultimedia `json:"multimedia"`
}

// NYTimesMultimedia accepts both the legacy array form and the newer object
// form of the multimedia attribute and keeps the first image URL.
type NYTimesMultimedia struct {
	URL string
}

func (m *NYTimesMultimedia) UnmarshalJSON(data []byte) error {
	var list []struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) > 0 {
			m.URL = list[0].URL
		}
		return nil
	}

	var obj struct {
		Default struct {
			URL string `json:"url"`
		} `json:"default"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	m.URL = obj.Default.URL
	return nil
}

type RedditPost struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
	Author     string  `json:"author"`
	Selftext   string  `json:"selftext"`
	Thumbnail  string  `json:"thumbnail"`
	Subreddit  string  `json:"subreddit"`
}
