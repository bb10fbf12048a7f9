package extract

import (
	"bytes"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/prodlens/backend/internal/domain"
)

// Extractor applies a declarative selector schema to raw HTML.
type Extractor struct {
	rules []FieldRule
}

// NewExtractor creates an extractor for the given schema.
func NewExtractor(rules []FieldRule) *Extractor {
	return &Extractor{rules: rules}
}

// Extract maps html to a flat field mapping. Extraction never fails
// structurally: unparseable HTML or missing selector targets produce the
// field defaults ("N/A" for scalars, empty for repeated fields).
func (e *Extractor) Extract(html []byte) domain.RawExtraction {
	out := make(domain.RawExtraction, len(e.rules))
	for _, rule := range e.rules {
		if rule.Multiple {
			out[rule.Name] = []string{}
		} else {
			out[rule.Name] = domain.MissingField
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		log.Printf("[Extractor] Failed to parse HTML: %v", err)
		return out
	}

	for _, rule := range e.rules {
		values := applyRule(doc, rule)
		if len(values) == 0 {
			continue
		}
		if rule.Multiple {
			out[rule.Name] = values
		} else {
			out[rule.Name] = values[0]
		}
	}

	return out
}

// applyRule collects the trimmed, non-empty matches for one rule.
func applyRule(doc *goquery.Document, rule FieldRule) []string {
	var values []string

	doc.Find(rule.Selector).Each(func(i int, sel *goquery.Selection) {
		if !rule.Multiple && len(values) > 0 {
			return
		}

		var val string
		if rule.Attribute == "" {
			val = sel.Text()
		} else {
			val, _ = sel.Attr(rule.Attribute)
		}

		val = strings.TrimSpace(val)
		if val != "" {
			values = append(values, val)
		}
	})

	return values
}
