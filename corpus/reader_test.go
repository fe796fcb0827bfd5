package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = "source,chapter_no,hadith_no,chapter,chain_indx,text_ar,text_en"

func TestReader_Read(t *testing.T) {
	data := sampleHeader + "\n" +
		"Sahih Bukhari,1,1,Revelation,\"3, 11, 330\",نص عربي,Actions are by intentions\n" +
		"Sahih Muslim,2,7,Faith,\"5, 9\",نص آخر,Another text\n"

	reader := NewReader()
	rows, skipped, err := reader.Read(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "Sahih Bukhari", first.Source)
	assert.Equal(t, 1, first.ChapterNumber)
	assert.Equal(t, 1, first.HadithNumber)
	assert.Equal(t, "Revelation", first.Chapter)
	assert.Equal(t, "3, 11, 330", first.ChainIndex)
	assert.Equal(t, "نص عربي", first.TextArabic)
	assert.Equal(t, "Actions are by intentions", first.TextEnglish)
}

func TestReader_Read_HeaderOrderIndependent(t *testing.T) {
	data := "text_en,source,hadith_no\nSome text,Sahih Bukhari,42\n"

	reader := NewReader()
	rows, skipped, err := reader.Read(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sahih Bukhari", rows[0].Source)
	assert.Equal(t, 42, rows[0].HadithNumber)
	assert.Equal(t, "Some text", rows[0].TextEnglish)
}

func TestReader_Read_MissingOptionalColumns(t *testing.T) {
	// No source, chapter or chain columns at all.
	data := "hadith_no,text_ar,text_en\n3,نص,text\n"

	reader := NewReader()
	rows, _, err := reader.Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "", rows[0].Source, "reader leaves source empty; mapper applies the sentinel")
	assert.Equal(t, 0, rows[0].ChapterNumber)
	assert.Equal(t, "", rows[0].Chapter)
	assert.Equal(t, "", rows[0].ChainIndex)
	assert.Equal(t, 3, rows[0].HadithNumber)
}

func TestReader_Read_RaggedRowDefaults(t *testing.T) {
	// Second row stops after chapter_no; trailing cells default.
	data := sampleHeader + "\n" +
		"Sahih Bukhari,1\n"

	reader := NewReader()
	rows, skipped, err := reader.Read(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sahih Bukhari", rows[0].Source)
	assert.Equal(t, 1, rows[0].ChapterNumber)
	assert.Equal(t, 0, rows[0].HadithNumber)
	assert.Equal(t, "", rows[0].TextEnglish)
}

func TestReader_Read_MalformedRecordSkipped(t *testing.T) {
	// Bare quote inside an unquoted field is a parse error for that record.
	data := sampleHeader + "\n" +
		"Sahih Bukhari,1,1,Revelation,\"3\",نص,good row\n" +
		"bad \"row,1,2,x,y,z,broken\n" +
		"Sahih Muslim,2,7,Faith,\"5\",نص,another good row\n"

	reader := NewReader()
	rows, skipped, err := reader.Read(strings.NewReader(data))
	require.NoError(t, err, "a malformed record must not abort the read")
	assert.Equal(t, 1, skipped)
	require.Len(t, rows, 2)
	assert.Equal(t, "good row", rows[0].TextEnglish)
	assert.Equal(t, "another good row", rows[1].TextEnglish)
}

func TestReader_Read_NumericForms(t *testing.T) {
	// pandas exports numeric columns as floats; both forms must parse.
	data := "hadith_no,chapter_no,text_en\n7.0,12,text\nnot-a-number,,more text\n"

	reader := NewReader()
	rows, _, err := reader.Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 7, rows[0].HadithNumber)
	assert.Equal(t, 12, rows[0].ChapterNumber)
	assert.Equal(t, 0, rows[1].HadithNumber, "unparseable numeric takes the sentinel")
	assert.Equal(t, 0, rows[1].ChapterNumber)
}

func TestReader_Read_EmptyFile(t *testing.T) {
	reader := NewReader()
	_, _, err := reader.Read(strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestReader_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.csv")
	data := sampleHeader + "\nSahih Bukhari,1,1,Revelation,\"3\",نص,text\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	reader := NewReader()
	rows, skipped, err := reader.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	assert.Len(t, rows, 1)
}

func TestReader_ReadFile_Missing(t *testing.T) {
	reader := NewReader()
	_, _, err := reader.ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err, "an unreadable corpus file is fatal")
}
