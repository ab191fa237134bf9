package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Builtin(t *testing.T) {
	lib, err := Open("")
	require.NoError(t, err)

	subjects := lib.Subjects()
	require.NotEmpty(t, subjects)

	for _, entry := range subjects {
		subject, err := lib.LoadSubject(entry.Slug)
		require.NoError(t, err, "subject %s", entry.Slug)
		assert.Equal(t, entry.Name, subject.Name)
		assert.Zero(t, subject.Skipped, "builtin content must be well formed")
		assert.NotEmpty(t, subject.Quiz, "subject %s has no quiz pool", entry.Slug)
	}
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "subjects.json", `{"format":"v2.0","subjects":[]}`)

	_, err := Open(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestOpen_InvalidFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "subjects.json", `{"format":"one","subjects":[]}`)

	_, err := Open(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "semver")
}

func TestOpen_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	// "subjects" entries missing required fields.
	writeFile(t, dir, "subjects.json", `{"format":"v1","subjects":[{"slug":"x"}]}`)

	_, err := Open(dir)
	require.Error(t, err)
}

func TestLoadSubject_DropsMalformedItems(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "subjects.json",
		`{"format":"v1","subjects":[{"slug":"s","name":"S","file":"s.json"}]}`)
	// Second quiz item's answer index is out of range; second cloze
	// template has no blanks. Both pass the JSON schema but fail the
	// structural invariants.
	writeFile(t, dir, "s.json", `{
		"quiz": [
			{"level":"Beginner","question":"ok?","choices":["a","b"],"answerIndex":0},
			{"level":"Beginner","question":"bad?","choices":["a","b"],"answerIndex":5}
		],
		"cloze": [
			{"template":"fine {{x}}"},
			{"template":"no blanks"}
		]
	}`)

	lib, err := Open(dir)
	require.NoError(t, err)

	subject, err := lib.LoadSubject("s")
	require.NoError(t, err)

	assert.Len(t, subject.Quiz, 1)
	assert.Len(t, subject.Cloze, 1)
	assert.Equal(t, 2, subject.Skipped)
}

func TestLoadSubject_SingleAndMultiAnswer(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "subjects.json",
		`{"format":"v1.3","subjects":[{"slug":"s","name":"S","file":"s.json"}]}`)
	writeFile(t, dir, "s.json", `{
		"quiz": [
			{"question":"single?","choices":["a","b"],"answerIndex":1},
			{"question":"multi?","choices":["a","b","c"],"answerIndexes":[0,2]}
		]
	}`)

	lib, err := Open(dir)
	require.NoError(t, err)

	subject, err := lib.LoadSubject("s")
	require.NoError(t, err)
	require.Len(t, subject.Quiz, 2)

	single := subject.Quiz[0].(ChoiceItem)
	assert.Equal(t, []int{1}, single.Answers)
	assert.False(t, single.MultiAnswer())
	assert.Equal(t, LevelNone, single.Level())

	multi := subject.Quiz[1].(ChoiceItem)
	assert.Equal(t, []int{0, 2}, multi.Answers)
	assert.True(t, multi.MultiAnswer())
}

func TestLoadSubject_Unknown(t *testing.T) {
	lib, err := Open("")
	require.NoError(t, err)

	_, err = lib.LoadSubject("nope")
	assert.Error(t, err)
}

func writeFile(t *testing.T, dir, name, data string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}
