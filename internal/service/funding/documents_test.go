package funding

import (
	"errors"
	"testing"

	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

func completeDocuments() map[string][]DocumentFile {
	docs := make(map[string][]DocumentFile, len(domain.RequiredDocuments))
	for _, kind := range domain.RequiredDocuments {
		docs[kind.String()] = []DocumentFile{{Filename: kind.String() + ".pdf", Content: []byte("%PDF-1.4 " + kind.String())}}
	}
	return docs
}

func TestValidateDocuments_Complete(t *testing.T) {
	t.Parallel()

	selected, err := ValidateDocuments(domain.RequiredDocuments, completeDocuments())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(selected) != len(domain.RequiredDocuments) {
		t.Fatalf("selected %d documents, want %d", len(selected), len(domain.RequiredDocuments))
	}
	for _, kind := range domain.RequiredDocuments {
		if selected[kind].Filename != kind.String()+".pdf" {
			t.Errorf("%s: selected %q", kind, selected[kind].Filename)
		}
	}
}

// Every non-empty subset of missing documents must be reported by the first
// missing kind in declared order.
func TestValidateDocuments_EveryMissingSubset(t *testing.T) {
	t.Parallel()

	n := len(domain.RequiredDocuments)
	for mask := 1; mask < 1<<n; mask++ {
		docs := completeDocuments()
		var want domain.DocumentKind
		for i := n - 1; i >= 0; i-- {
			if mask&(1<<i) != 0 {
				kind := domain.RequiredDocuments[i]
				if i%2 == 0 {
					delete(docs, kind.String())
				} else {
					docs[kind.String()] = []DocumentFile{{Filename: "empty.pdf"}}
				}
				want = kind
			}
		}

		_, err := ValidateDocuments(domain.RequiredDocuments, docs)
		var missing *domain.MissingDocumentError
		if !errors.As(err, &missing) {
			t.Fatalf("mask %b: expected MissingDocumentError, got %v", mask, err)
		}
		if missing.Name != want {
			t.Fatalf("mask %b: reported %s, want %s", mask, missing.Name, want)
		}
		if !errors.Is(err, domain.ErrMissingDocument) {
			t.Fatalf("mask %b: error does not match ErrMissingDocument", mask)
		}
	}
}

func TestValidateDocuments_FirstNonEmptyWins(t *testing.T) {
	t.Parallel()

	docs := completeDocuments()
	docs[domain.DocumentIDCopy.String()] = []DocumentFile{
		{Filename: "blank.png"},
		{Filename: "front.png", Content: []byte("front")},
		{Filename: "back.png", Content: []byte("back")},
	}

	selected, err := ValidateDocuments(domain.RequiredDocuments, docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := selected[domain.DocumentIDCopy].Filename; got != "front.png" {
		t.Errorf("selected %q, want front.png", got)
	}
}

func TestValidateDocuments_IgnoresUnknownParts(t *testing.T) {
	t.Parallel()

	docs := completeDocuments()
	docs["company_logo"] = []DocumentFile{{Filename: "logo.png", Content: []byte("x")}}

	selected, err := ValidateDocuments(domain.RequiredDocuments, docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(selected) != len(domain.RequiredDocuments) {
		t.Errorf("unknown part leaked into selection: %d entries", len(selected))
	}
}

func TestValidateDocuments_NilInput(t *testing.T) {
	t.Parallel()

	_, err := ValidateDocuments(domain.RequiredDocuments, nil)
	var missing *domain.MissingDocumentError
	if !errors.As(err, &missing) || missing.Name != domain.RequiredDocuments[0] {
		t.Fatalf("expected first declared document to be reported, got %v", err)
	}
}
