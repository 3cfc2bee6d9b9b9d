package domain

import (
	"encoding/json"
	"time"
)

const (
	DefaultDifficulty = "Mixed"
	SourceAutomated   = "automated_conversion"

	catalogKeyQuizSets = "quiz-sets"
	catalogKeyMetadata = "metadata"
)

// CatalogEntry describes one registered quiz set file. Keys the front-end
// reads but this package does not model (default, recommended, ...) are kept
// in Extra and written back unchanged.
type CatalogEntry struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count"`
	AutoGenerated bool   `json:"auto_generated"`
	CreatedDate   string `json:"created_date"`
	Source        string `json:"source"`

	Extra map[string]json.RawMessage `json:"-"`
}

type catalogEntryFields CatalogEntry

// MarshalJSON implements the json.Marshaler interface
func (e CatalogEntry) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(catalogEntryFields(e), e.Extra)
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (e *CatalogEntry) UnmarshalJSON(data []byte) error {
	var fields catalogEntryFields
	extra, err := unmarshalWithExtra(data, &fields)
	if err != nil {
		return err
	}
	*e = CatalogEntry(fields)
	e.Extra = extra
	return nil
}

// CatalogMetadata holds the catalog-wide bookkeeping fields.
type CatalogMetadata struct {
	TotalQuizSets   int      `json:"total_quiz_sets"`
	LastUpdated     string   `json:"last_updated"`
	TopicsAvailable []string `json:"topics_available"`

	Extra map[string]json.RawMessage `json:"-"`
}

type catalogMetadataFields CatalogMetadata

// MarshalJSON implements the json.Marshaler interface
func (m CatalogMetadata) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(catalogMetadataFields(m), m.Extra)
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (m *CatalogMetadata) UnmarshalJSON(data []byte) error {
	var fields catalogMetadataFields
	extra, err := unmarshalWithExtra(data, &fields)
	if err != nil {
		return err
	}
	*m = CatalogMetadata(fields)
	m.Extra = extra
	return nil
}

// Catalog is the quiz-config document consumed by the front-end.
// Top-level keys other than quiz-sets and metadata are carried through untouched.
type Catalog struct {
	QuizSets map[string]CatalogEntry
	Metadata CatalogMetadata
	Extra    map[string]json.RawMessage
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		QuizSets: make(map[string]CatalogEntry),
		Metadata: CatalogMetadata{TopicsAvailable: []string{}},
	}
}

// Put registers or replaces an entry and refreshes the metadata.
func (c *Catalog) Put(fileName string, entry CatalogEntry, now time.Time) {
	if c.QuizSets == nil {
		c.QuizSets = make(map[string]CatalogEntry)
	}
	c.QuizSets[fileName] = entry
	c.touch(now.Format("2006-01-02"))
}

// Remove deletes an entry. It reports whether the entry existed; metadata is
// only refreshed when something was removed.
func (c *Catalog) Remove(fileName string, now time.Time) bool {
	if _, ok := c.QuizSets[fileName]; !ok {
		return false
	}
	delete(c.QuizSets, fileName)
	c.touch(now.Format("2006-01-02 15:04:05"))
	return true
}

func (c *Catalog) touch(stamp string) {
	c.Metadata.TotalQuizSets = len(c.QuizSets)
	c.Metadata.LastUpdated = stamp
	if c.Metadata.TopicsAvailable == nil {
		c.Metadata.TopicsAvailable = []string{}
	}
}

// MarshalJSON implements the json.Marshaler interface
func (c Catalog) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(c.Extra)+2)
	for k, v := range c.Extra {
		doc[k] = v
	}
	quizSets := c.QuizSets
	if quizSets == nil {
		quizSets = map[string]CatalogEntry{}
	}
	doc[catalogKeyQuizSets] = quizSets
	doc[catalogKeyMetadata] = c.Metadata
	return json.Marshal(doc)
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	c.QuizSets = make(map[string]CatalogEntry)
	if raw, ok := doc[catalogKeyQuizSets]; ok {
		if err := json.Unmarshal(raw, &c.QuizSets); err != nil {
			return err
		}
		delete(doc, catalogKeyQuizSets)
	}
	if raw, ok := doc[catalogKeyMetadata]; ok {
		if err := json.Unmarshal(raw, &c.Metadata); err != nil {
			return err
		}
		delete(doc, catalogKeyMetadata)
	}
	if len(doc) > 0 {
		c.Extra = doc
	}
	return nil
}

// marshalWithExtra encodes fields and adds every extra key fields does not set.
func marshalWithExtra(fields interface{}, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(fields)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, known := doc[k]; !known {
			doc[k] = v
		}
	}
	return json.Marshal(doc)
}

// unmarshalWithExtra decodes data into fields and returns the keys fields
// has no place for.
func unmarshalWithExtra(data []byte, fields interface{}) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, fields); err != nil {
		return nil, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	known, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var knownKeys map[string]json.RawMessage
	if err := json.Unmarshal(known, &knownKeys); err != nil {
		return nil, err
	}
	for k := range knownKeys {
		delete(doc, k)
	}
	if len(doc) == 0 {
		return nil, nil
	}
	return doc, nil
}
