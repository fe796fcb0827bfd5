package corpus

import (
	"fmt"

	"github.com/sanadlabs/hadithvec/core"
)

// contentTemplate orders the Arabic text before the English translation,
// matching the layout the collection was indexed with.
const contentTemplate = "الحديث باللغة العربية:\n%s\n\nhadith in english:\n%s"

// DocumentFromHadith maps one corpus row to exactly one document.
// It is total for well-formed rows: missing optional fields have already
// been defaulted by the reader, and the source sentinel is applied here.
func DocumentFromHadith(h core.Hadith) core.Document {
	source := h.Source
	if source == "" {
		source = core.SourceUnknown
	}

	return core.Document{
		Content: fmt.Sprintf(contentTemplate, h.TextArabic, h.TextEnglish),
		Metadata: map[string]any{
			"source":         source,
			"hadith_number":  h.HadithNumber,
			"chapter_number": h.ChapterNumber,
			"chapter":        h.Chapter,
			"chain_index":    h.ChainIndex,
		},
	}
}

// DocumentsFromHadiths maps a slice of rows into documents, preserving
// order.
func DocumentsFromHadiths(rows []core.Hadith) []core.Document {
	docs := make([]core.Document, len(rows))
	for i, h := range rows {
		docs[i] = DocumentFromHadith(h)
	}
	return docs
}
