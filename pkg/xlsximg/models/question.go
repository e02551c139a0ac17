package models

// QuestionRecord is a row that carries a question number, chapter number and text.
type QuestionRecord struct {
	// QuestionNo is the resolved question column value.
	QuestionNo string `json:"question_no"`
	// ChapterNo is the resolved chapter column value.
	ChapterNo string `json:"chapter_no"`
	// Row is the worksheet row number (1-based).
	Row int `json:"row"`
	// Text is the resolved question text column value.
	Text string `json:"full_text"`
}

// Key returns the table key "chapter_question".
func (q QuestionRecord) Key() string {
	return q.ChapterNo + "_" + q.QuestionNo
}

// Number returns the display number "chapter.question".
func (q QuestionRecord) Number() string {
	return q.ChapterNo + "." + q.QuestionNo
}

// QuestionTable holds question records keyed by QuestionRecord.Key in first-insertion order.
// Putting an existing key replaces the record in place.
type QuestionTable struct {
	keys    []string
	records map[string]QuestionRecord
}

// NewQuestionTable creates an empty QuestionTable.
func NewQuestionTable() *QuestionTable {
	return &QuestionTable{records: make(map[string]QuestionRecord)}
}

// Put stores q under its key.
func (t *QuestionTable) Put(q QuestionRecord) {
	key := q.Key()
	if _, ok := t.records[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.records[key] = q
}

// Get returns the record stored under key.
func (t *QuestionTable) Get(key string) (QuestionRecord, bool) {
	q, ok := t.records[key]
	return q, ok
}

// Len returns the number of distinct keys.
func (t *QuestionTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Records returns the records in key insertion order.
func (t *QuestionTable) Records() []QuestionRecord {
	if t == nil {
		return nil
	}
	out := make([]QuestionRecord, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, t.records[k])
	}
	return out
}
