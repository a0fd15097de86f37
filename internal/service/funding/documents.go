package funding

import (
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

// ValidateDocuments picks one payload per required kind. It walks required
// in order and fails on the first kind that has no non-empty file. When a
// kind carries several files the first non-empty one wins.
func ValidateDocuments(required []domain.DocumentKind, docs map[string][]DocumentFile) (map[domain.DocumentKind]DocumentFile, error) {
	selected := make(map[domain.DocumentKind]DocumentFile, len(required))
	for _, kind := range required {
		file, ok := firstNonEmpty(docs[kind.String()])
		if !ok {
			return nil, &domain.MissingDocumentError{Name: kind}
		}
		selected[kind] = file
	}
	return selected, nil
}

func firstNonEmpty(files []DocumentFile) (DocumentFile, bool) {
	for _, f := range files {
		if len(f.Content) > 0 {
			return f, true
		}
	}
	return DocumentFile{}, false
}
