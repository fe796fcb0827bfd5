package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanadlabs/hadithvec/core"
)

func TestDocumentFromHadith_AllFieldsPresent(t *testing.T) {
	h := core.Hadith{
		Source:        "Sahih Bukhari",
		HadithNumber:  1,
		ChapterNumber: 1,
		Chapter:       "Revelation",
		ChainIndex:    "3, 11, 330",
		TextArabic:    "إنما الأعمال بالنيات",
		TextEnglish:   "Actions are but by intentions",
	}

	doc := DocumentFromHadith(h)

	assert.Contains(t, doc.Content, h.TextArabic)
	assert.Contains(t, doc.Content, h.TextEnglish)
	assert.Less(t,
		strings.Index(doc.Content, h.TextArabic),
		strings.Index(doc.Content, h.TextEnglish),
		"Arabic text must precede the English text")

	assert.Equal(t, map[string]any{
		"source":         "Sahih Bukhari",
		"hadith_number":  1,
		"chapter_number": 1,
		"chapter":        "Revelation",
		"chain_index":    "3, 11, 330",
	}, doc.Metadata)
}

func TestDocumentFromHadith_Defaults(t *testing.T) {
	doc := DocumentFromHadith(core.Hadith{TextEnglish: "only english"})

	assert.Equal(t, core.SourceUnknown, doc.Metadata["source"])
	assert.Equal(t, 0, doc.Metadata["hadith_number"])
	assert.Equal(t, 0, doc.Metadata["chapter_number"])
	assert.Equal(t, "", doc.Metadata["chapter"])
	assert.Equal(t, "", doc.Metadata["chain_index"])
	assert.Contains(t, doc.Content, "only english")
}

func TestDocumentFromHadith_NeverFails(t *testing.T) {
	// A completely empty row still maps to a document; validation of
	// usefulness is not the mapper's job.
	doc := DocumentFromHadith(core.Hadith{})
	assert.NotEmpty(t, doc.Content, "template text keeps content non-empty")
	require.Len(t, doc.Metadata, 5)
}

func TestDocumentsFromHadiths_PreservesOrder(t *testing.T) {
	rows := []core.Hadith{
		{HadithNumber: 1, TextEnglish: "first"},
		{HadithNumber: 2, TextEnglish: "second"},
		{HadithNumber: 3, TextEnglish: "third"},
	}

	docs := DocumentsFromHadiths(rows)
	require.Len(t, docs, 3)
	for i, doc := range docs {
		assert.Equal(t, rows[i].HadithNumber, doc.Metadata["hadith_number"])
	}
}
