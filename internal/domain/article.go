package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Source identifies the provider an article was ingested from. It is derived
// from the collection a record lives in and never stored in the document.
type Source string

const (
	SourceGuardian Source = "guardian"
	SourceNYTimes  Source = "nytimes"
	SourceReddit   Source = "reddit"
)

// Sources lists every supported source in feed order.
var Sources = []Source{SourceGuardian, SourceNYTimes, SourceReddit}

func ParseSource(s string) (Source, error) {
	for _, src := range Sources {
		if string(src) == s {
			return src, nil
		}
	}
	return "", fmt.Errorf("unknown source: %q", s)
}

const UnknownHost = "Unknown"

// Document keys of a persisted article.
const (
	FieldTitle           = "title"
	FieldURL             = "url"
	FieldLink            = "link"
	FieldPublicationDate = "publicationDate"
	FieldHostOrigin      = "hostOrigin"
	FieldAuthor          = "author"
	FieldDescription     = "description"
	FieldImage           = "image"
	FieldCommunityTag    = "communityTag"
)

var newsFields = []string{
	FieldTitle,
	FieldURL,
	FieldPublicationDate,
	FieldHostOrigin,
	FieldDescription,
}

var socialFields = []string{
	FieldTitle,
	FieldURL,
	FieldLink,
	FieldPublicationDate,
	FieldHostOrigin,
	FieldAuthor,
	FieldDescription,
	FieldImage,
	FieldCommunityTag,
}

// CanonicalFields returns the document keys every stored record of the
// source must carry.
func (s Source) CanonicalFields() []string {
	if s == SourceReddit {
		return socialFields
	}
	return newsFields
}

// Article is the unified, source-tagged record produced by normalization.
type Article struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	URL             string    `json:"url"`
	Link            string    `json:"link"`
	PublicationDate string    `json:"publicationDate"`
	Source          Source    `json:"source"`
	HostOrigin      string    `json:"hostOrigin"`
	Author          string    `json:"author"`
	Description     string    `json:"description"`
	Image           string    `json:"image"`
	CommunityTag    string    `json:"communityTag"`
}

// Document renders the article as the key/value document persisted for its
// source. Only canonical keys are written.
func (a Article) Document() map[string]string {
	fields := a.Source.CanonicalFields()
	doc := make(map[string]string, len(fields))
	for _, f := range fields {
		doc[f] = a.field(f)
	}
	return doc
}

func (a Article) field(name string) string {
	switch name {
	case FieldTitle:
		return a.Title
	case FieldURL:
		return a.URL
	case FieldLink:
		return a.Link
	case FieldPublicationDate:
		return a.PublicationDate
	case FieldHostOrigin:
		return a.HostOrigin
	case FieldAuthor:
		return a.Author
	case FieldDescription:
		return a.Description
	case FieldImage:
		return a.Image
	case FieldCommunityTag:
		return a.CommunityTag
	default:
		return ""
	}
}

// ArticleFromDocument rebuilds an article from a persisted document. Missing
// keys leave the corresponding field empty.
func ArticleFromDocument(id uuid.UUID, source Source, doc map[string]string) Article {
	return Article{
		ID:              id,
		Source:          source,
		Title:           doc[FieldTitle],
		URL:             doc[FieldURL],
		Link:            doc[FieldLink],
		PublicationDate: doc[FieldPublicationDate],
		HostOrigin:      doc[FieldHostOrigin],
		Author:          doc[FieldAuthor],
		Description:     doc[FieldDescription],
		Image:           doc[FieldImage],
		CommunityTag:    doc[FieldCommunityTag],
	}
}
