package dataset

// Request bodies. Value and id fields are untyped because clients send
// both JSON numbers and numeric strings; see ParseValue and ParseID.

type PasswordRequest struct {
	_        struct{} `json:"-" additionalProperties:"true"`
	Password string   `json:"password,omitempty" doc:"Dataset password"`
}

type AddSentenceRequest struct {
	_        struct{} `json:"-" additionalProperties:"true"`
	NewText  string   `json:"new_text,omitempty" doc:"Sentence text, 1 to 250 characters"`
	NewValue any      `json:"new_value,omitempty" doc:"Optional integer value, number or numeric string"`
}

type SentenceInput struct {
	_     struct{} `json:"-" additionalProperties:"true"`
	Text  string   `json:"text,omitempty"`
	Value any      `json:"value,omitempty"`
}

type EditedSentenceInput struct {
	_     struct{} `json:"-" additionalProperties:"true"`
	ID    any      `json:"id,omitempty"`
	Text  string   `json:"text,omitempty"`
	Value any      `json:"value,omitempty"`
}

type CreateRequest struct {
	_         struct{}        `json:"-" additionalProperties:"true"`
	Name      string          `json:"name,omitempty" doc:"Dataset name, at most 50 characters"`
	Password  string          `json:"password,omitempty"`
	IsOpen    bool            `json:"is_open,omitempty"`
	UseValue  bool            `json:"use_value,omitempty"`
	ValueName *string         `json:"value_name,omitempty" nullable:"true"`
	Sentences []SentenceInput `json:"sentences,omitempty"`
}

type EditRequest struct {
	_                 struct{}              `json:"-" additionalProperties:"true"`
	Password          string                `json:"password,omitempty"`
	NewName           *string               `json:"new_name,omitempty" nullable:"true"`
	NewIsOpen         *bool                 `json:"new_is_open,omitempty" nullable:"true"`
	NewUseValue       *bool                 `json:"new_use_value,omitempty" nullable:"true"`
	NewValueName      *string               `json:"new_value_name,omitempty" nullable:"true"`
	NewSentences      []SentenceInput       `json:"new_sentences,omitempty"`
	EditedSentences   []EditedSentenceInput `json:"edited_sentences,omitempty"`
	SentencesToRemove []any                 `json:"sentences_to_remove,omitempty"`
}
