package dataset

// Dataset is a named, password-protected collection of sentences.
type Dataset struct {
	ID           int64
	Name         string
	PasswordHash string // bcrypt
	IsOpen       bool
	UseValue     bool
	ValueName    *string
	Sentences    []Sentence
}

// Sentence belongs to exactly one dataset; (DatasetID, ID) is its identity.
type Sentence struct {
	ID        int64
	DatasetID int64
	Text      string
	Value     int64
}

// Summary is the list projection of a dataset.
type Summary struct {
	ID     int64
	Name   string
	IsOpen bool
}

// Changes is a validated edit applied by Repository.Edit in one transaction.
// Nil fields are left untouched.
type Changes struct {
	Name      *string
	IsOpen    *bool
	UseValue  *bool
	ValueName *string

	Upsert []Sentence // client-supplied ids
	Remove []int64
	Insert []Sentence // ids generated by the store
}

// Empty reports whether applying c would change nothing.
func (c Changes) Empty() bool {
	return c.Name == nil && c.IsOpen == nil && c.UseValue == nil && c.ValueName == nil &&
		len(c.Upsert) == 0 && len(c.Remove) == 0 && len(c.Insert) == 0
}

// NewSentence builds a sentence with the default value applied.
func NewSentence(text string) Sentence {
	return Sentence{Text: text, Value: 0}
}
