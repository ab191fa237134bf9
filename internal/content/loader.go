package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"
)

// FormatMajor is the content format this build understands. Manifests
// declaring any other major version are rejected at load time.
const FormatMajor = "v1"

// manifestFile is the per-library index of subjects.
const manifestFile = "subjects.json"

//go:embed quizzes
var builtin embed.FS

// Manifest is the parsed subjects.json.
type Manifest struct {
	Format   string          `json:"format"`
	Subjects []ManifestEntry `json:"subjects"`
}

// ManifestEntry names one subject and the file its pools live in.
type ManifestEntry struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	File string `json:"file"`
}

// Library is an opened content directory: a validated manifest plus the
// filesystem its subject files are read from.
type Library struct {
	fsys     fs.FS
	manifest Manifest
}

// Open loads and validates the manifest under dir. An empty dir opens
// the content embedded in the binary.
func Open(dir string) (*Library, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(builtin, "quizzes")
		if err != nil {
			return nil, fmt.Errorf("open builtin content: %w", err)
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}

	raw, err := fs.ReadFile(fsys, manifestFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", manifestFile, err)
	}
	if err := validateFile(manifestSchema, raw); err != nil {
		return nil, fmt.Errorf("%s: %w", manifestFile, err)
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", manifestFile, err)
	}

	if !semver.IsValid(m.Format) {
		return nil, fmt.Errorf("%s: format %q is not valid semver", manifestFile, m.Format)
	}
	if semver.Major(m.Format) != FormatMajor {
		return nil, fmt.Errorf("%s: format %s is unsupported (want %s.x)", manifestFile, m.Format, FormatMajor)
	}

	return &Library{fsys: fsys, manifest: m}, nil
}

// Resolve opens the content library using the usual priority order:
// explicit dir (--content flag), QUIZDECK_CONTENT env var, the XDG data
// directory if it holds a manifest, and finally the embedded content.
func Resolve(dir string) (*Library, error) {
	if dir != "" {
		return Open(dir)
	}
	if p := os.Getenv("QUIZDECK_CONTENT"); p != "" {
		return Open(p)
	}
	if p, err := DataDir(); err == nil {
		if _, statErr := os.Stat(filepath.Join(p, manifestFile)); statErr == nil {
			return Open(p)
		}
	}
	return Open("")
}

// DataDir resolves $XDG_DATA_HOME/quizdeck/quizzes, falling back to
// ~/.local/share/quizdeck/quizzes.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "quizdeck", "quizzes"), nil
}

// Subjects returns the manifest entries in file order.
func (l *Library) Subjects() []ManifestEntry {
	return l.manifest.Subjects
}

// Format returns the manifest's declared format version.
func (l *Library) Format() string {
	return l.manifest.Format
}

// LoadSubject reads, validates and decodes one subject's pools.
// Items failing a structural invariant are dropped and counted in
// Subject.Skipped rather than failing the load.
func (l *Library) LoadSubject(slug string) (*Subject, error) {
	var entry *ManifestEntry
	for i := range l.manifest.Subjects {
		if l.manifest.Subjects[i].Slug == slug {
			entry = &l.manifest.Subjects[i]
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("unknown subject %q", slug)
	}

	raw, err := fs.ReadFile(l.fsys, entry.File)
	if err != nil {
		return nil, fmt.Errorf("read subject %s: %w", entry.Slug, err)
	}
	if err := validateFile(subjectSchema, raw); err != nil {
		return nil, fmt.Errorf("subject %s: %w", entry.Slug, err)
	}

	var file subjectFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse subject %s: %w", entry.Slug, err)
	}

	subject := &Subject{
		Slug:     entry.Slug,
		Name:     entry.Name,
		Overview: file.Overview,
	}

	var dropped int
	subject.Quiz, dropped = FilterValid(decodeChoiceItems(file.Quiz))
	subject.Skipped += dropped
	subject.Cards, dropped = FilterValid(decodeRecallCards(file.Cards))
	subject.Skipped += dropped
	subject.Cloze, dropped = FilterValid(decodeClozeItems(file.Cloze))
	subject.Skipped += dropped

	return subject, nil
}

// subjectFile is the on-disk shape of one subject.
type subjectFile struct {
	Overview string           `json:"overview"`
	Quiz     []choiceItemJSON `json:"quiz"`
	Cards    []recallCardJSON `json:"cards"`
	Cloze    []clozeItemJSON  `json:"cloze"`
}

type choiceItemJSON struct {
	Level         string   `json:"level"`
	Question      string   `json:"question"`
	Choices       []string `json:"choices"`
	AnswerIndex   *int     `json:"answerIndex"`
	AnswerIndexes []int    `json:"answerIndexes"`
	Explanation   string   `json:"explanation"`
}

type recallCardJSON struct {
	Level       string `json:"level"`
	Front       string `json:"front"`
	Back        string `json:"back"`
	Explanation string `json:"explanation"`
}

type clozeItemJSON struct {
	Level    string `json:"level"`
	Prompt   string `json:"prompt"`
	Template string `json:"template"`
}

func decodeChoiceItems(raw []choiceItemJSON) []Item {
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		answers := r.AnswerIndexes
		if len(answers) == 0 && r.AnswerIndex != nil {
			answers = []int{*r.AnswerIndex}
		}
		items = append(items, ChoiceItem{
			Difficulty:  r.Level,
			Question:    r.Question,
			Choices:     r.Choices,
			Answers:     answers,
			Explanation: r.Explanation,
		})
	}
	return items
}

func decodeRecallCards(raw []recallCardJSON) []Item {
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		items = append(items, RecallCard{
			Difficulty:  r.Level,
			Front:       r.Front,
			Back:        r.Back,
			Explanation: r.Explanation,
		})
	}
	return items
}

func decodeClozeItems(raw []clozeItemJSON) []Item {
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		items = append(items, ClozeItem{
			Difficulty: r.Level,
			Prompt:     r.Prompt,
			Template:   r.Template,
		})
	}
	return items
}
