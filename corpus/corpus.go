// Package corpus supplies the training name corpus. Selection policy (locale
// exclusions, minimum corpus size per gender) lives here, never in the
// statistical core.
package corpus

import (
	"namevibe/db"
)

// Gender selects one of the two independently trained name sets.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Genders lists both trained genders in a stable order.
func Genders() []Gender { return []Gender{Male, Female} }

// Example is one raw training name. Immutable once created.
type Example struct {
	Text     string
	Language string
	Gender   Gender
}

// Selection is the corpus selection policy, configured explicitly rather
// than hard-coded.
type Selection struct {
	ExcludedLocales   []string `yaml:"excluded_locales"`
	MinNamesPerGender int      `yaml:"min_names_per_gender"`
}

// Loader reads examples from the name store and applies the selection
// policy.
type Loader struct {
	selection Selection
	excluded  map[string]struct{}
}

// NewLoader creates a loader with the given selection policy.
func NewLoader(selection Selection) *Loader {
	excluded := make(map[string]struct{}, len(selection.ExcludedLocales))
	for _, locale := range selection.ExcludedLocales {
		excluded[locale] = struct{}{}
	}
	return &Loader{selection: selection, excluded: excluded}
}

// Load returns the usable examples for one gender from the name store.
func (l *Loader) Load(gender Gender) ([]Example, error) {
	rows, err := db.NamesByGender(string(gender))
	if err != nil {
		return nil, err
	}
	return l.Select(rows, gender), nil
}

// Select applies the selection policy to raw rows: excluded locales are
// skipped and languages contributing fewer than MinNamesPerGender names for
// this gender are dropped entirely.
func (l *Loader) Select(rows []db.NameRow, gender Gender) []Example {
	perLanguage := make(map[string]int)
	for _, row := range rows {
		if _, skip := l.excluded[row.Language]; skip {
			continue
		}
		perLanguage[row.Language]++
	}

	examples := make([]Example, 0, len(rows))
	for _, row := range rows {
		if _, skip := l.excluded[row.Language]; skip {
			continue
		}
		if perLanguage[row.Language] < l.selection.MinNamesPerGender {
			continue
		}
		examples = append(examples, Example{Text: row.Text, Language: row.Language, Gender: gender})
	}
	return examples
}
