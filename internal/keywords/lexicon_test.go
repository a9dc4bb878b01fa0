package keywords

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultDictionariesValidate(t *testing.T) {
	require.NoError(t, Default().Validate())
	require.Len(t, Default().Positive, 18)
	require.Len(t, Default().Negative, 18)
}

func TestValidateRejectsCrossLexiconDuplicate(t *testing.T) {
	d := testDicts()
	d.Negative = append(d.Negative, Entry{Match: "fast", Label: "太快"})
	err := d.Validate()
	require.ErrorIs(t, err, ErrDuplicateKeyword)
	require.Contains(t, err.Error(), "fast")
}

func TestValidateRejectsDuplicateWithinLexicon(t *testing.T) {
	d := testDicts()
	d.Positive = append(d.Positive, Entry{Match: "GREAT", Label: "再次优异"})
	require.ErrorIs(t, d.Validate(), ErrDuplicateKeyword)
}

func TestValidateRejectsEmptyLexicon(t *testing.T) {
	d := testDicts()
	d.Negative = nil
	require.ErrorIs(t, d.Validate(), ErrEmptyLexicon)
}

func TestValidateRejectsBlankEntry(t *testing.T) {
	d := testDicts()
	d.Positive = append(d.Positive, Entry{Match: "  ", Label: "x"})
	require.Error(t, d.Validate())
}

func TestLoadFilePreservesOrder(t *testing.T) {
	yml := `positive:
  - {match: zulu, label: Z}
  - {match: alpha, label: A}
  - {match: mike, label: M}
negative:
  - {match: broke, label: B}
`
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	d, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, Lexicon{{"zulu", "Z"}, {"alpha", "A"}, {"mike", "M"}}, d.Positive)
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	yml := `positive:
  - {match: fast, label: F}
negative:
  - {match: fast, label: S}
`
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	_, err := LoadFile(path)
	require.ErrorIs(t, err, ErrDuplicateKeyword)
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, SaveFile(testDicts(), path))
	d, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, testDicts(), d)
}
