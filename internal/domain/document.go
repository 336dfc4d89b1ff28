package domain

import "github.com/google/uuid"

type FieldSet interface {
	ContainField(field string) bool
}

func ContainFields[D FieldSet](doc D, fields []string) bool {
	for _, field := range fields {
		if !doc.ContainField(field) {
			return false
		}
	}
	return true
}

// StoredArticle is an article read back from a collection together with the
// document keys that were actually present in storage.
type StoredArticle struct {
	Article
	fields map[string]struct{}
}

// NewStoredArticle decodes a persisted document. The document keys, not the
// decoded struct, decide which fields count as present.
func NewStoredArticle(id uuid.UUID, source Source, doc map[string]string) StoredArticle {
	fields := make(map[string]struct{}, len(doc))
	for k := range doc {
		fields[k] = struct{}{}
	}
	return StoredArticle{
		Article: ArticleFromDocument(id, source, doc),
		fields:  fields,
	}
}

func (s StoredArticle) ContainField(field string) bool {
	_, ok := s.fields[field]
	return ok
}
