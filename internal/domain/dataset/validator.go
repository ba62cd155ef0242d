package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLen     = 50
	MaxTextLen     = 250
	MaxPasswordLen = 72 // bcrypt input limit, bytes

	// MaxSentenceID is the largest id a client may name. Stores allocate
	// new ids above the current maximum, so ids near MaxInt64 would exhaust
	// the id space for every dataset.
	MaxSentenceID = math.MaxInt64 / 2

	// maxExactNumber bounds JSON numbers decoded as float64; larger
	// integers are not represented exactly.
	maxExactNumber = 1 << 53
)

// Validator turns raw requests into store-ready values.
type Validator interface {
	ValidateCreate(req CreateRequest) (Dataset, []Sentence, error)
	ValidateAdd(req AddSentenceRequest) (Sentence, error)
	ValidateEdit(req EditRequest) (Changes, error)
}

type RequestValidator struct {
	maxNameLen int
	maxTextLen int
}

// NewRequestValidator uses the default length limits.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		maxNameLen: MaxNameLen,
		maxTextLen: MaxTextLen,
	}
}

// ValidateCreate checks name, password, value name and every sentence.
// PasswordHash of the returned dataset is left empty.
func (v *RequestValidator) ValidateCreate(req CreateRequest) (Dataset, []Sentence, error) {
	if req.Name == "" || req.Password == "" {
		return Dataset{}, nil, invalid(MsgNameAndPassword)
	}
	if err := v.validateName(req.Name); err != nil {
		return Dataset{}, nil, err
	}
	if len(req.Password) > MaxPasswordLen {
		return Dataset{}, nil, invalid(MsgPasswordTooLong)
	}
	valueName, err := v.validateValueName(req.ValueName)
	if err != nil {
		return Dataset{}, nil, err
	}

	sentences, err := v.validateSentences(req.Sentences)
	if err != nil {
		return Dataset{}, nil, err
	}

	return Dataset{
		Name:      req.Name,
		IsOpen:    req.IsOpen,
		UseValue:  req.UseValue,
		ValueName: valueName,
	}, sentences, nil
}

// ValidateAdd checks a sentence submitted to an open dataset.
func (v *RequestValidator) ValidateAdd(req AddSentenceRequest) (Sentence, error) {
	if req.NewText == "" {
		return Sentence{}, invalid(MsgNoSentence)
	}
	if utf8.RuneCountInString(req.NewText) > v.maxTextLen {
		return Sentence{}, invalid(MsgSentenceTooLong)
	}
	value, ok := ParseValue(req.NewValue)
	if !ok {
		return Sentence{}, invalid(MsgInvalidValue)
	}

	s := NewSentence(req.NewText)
	s.Value = value
	return s, nil
}

// ValidateEdit validates every field and batch before anything is applied.
// Batches are scanned in the order new, removed, edited; the first bad item
// rejects the whole edit.
func (v *RequestValidator) ValidateEdit(req EditRequest) (Changes, error) {
	var ch Changes

	if req.NewName != nil && *req.NewName != "" {
		if err := v.validateName(*req.NewName); err != nil {
			return Changes{}, err
		}
		ch.Name = req.NewName
	}
	ch.IsOpen = req.NewIsOpen
	ch.UseValue = req.NewUseValue

	valueName, err := v.validateValueName(req.NewValueName)
	if err != nil {
		return Changes{}, err
	}
	ch.ValueName = valueName

	if ch.Insert, err = v.validateSentences(req.NewSentences); err != nil {
		return Changes{}, err
	}

	ch.Remove = make([]int64, 0, len(req.SentencesToRemove))
	for _, raw := range req.SentencesToRemove {
		id, ok := ParseID(raw)
		if !ok {
			return Changes{}, invalid(MsgInvalidRemove)
		}
		ch.Remove = append(ch.Remove, id)
	}

	ch.Upsert = make([]Sentence, 0, len(req.EditedSentences))
	for _, in := range req.EditedSentences {
		s, err := v.validateSentence(in.Text, in.Value)
		if err != nil {
			return Changes{}, err
		}
		id, ok := ParseID(in.ID)
		if !ok {
			return Changes{}, invalid(MsgInvalidEditedID)
		}
		s.ID = id
		ch.Upsert = append(ch.Upsert, s)
	}

	return ch, nil
}

func (v *RequestValidator) validateName(name string) error {
	if utf8.RuneCountInString(name) > v.maxNameLen {
		return invalid(MsgNameTooLong)
	}
	return nil
}

// validateValueName returns nil for an absent or empty label.
func (v *RequestValidator) validateValueName(name *string) (*string, error) {
	if name == nil || *name == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(*name) > v.maxNameLen {
		return nil, invalid(MsgValueNameTooLong)
	}
	return name, nil
}

func (v *RequestValidator) validateSentences(in []SentenceInput) ([]Sentence, error) {
	out := make([]Sentence, 0, len(in))
	for _, item := range in {
		s, err := v.validateSentence(item.Text, item.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (v *RequestValidator) validateSentence(text string, rawValue any) (Sentence, error) {
	if text == "" {
		return Sentence{}, invalid(MsgEmptySentence)
	}
	if utf8.RuneCountInString(text) > v.maxTextLen {
		return Sentence{}, invalid(MsgSentencesTooLong)
	}
	value, ok := ParseValue(rawValue)
	if !ok {
		return Sentence{}, invalid(MsgInvalidValues)
	}

	s := NewSentence(text)
	s.Value = value
	return s, nil
}

// ParseValue parses a sentence value: digits with at most one leading minus,
// as a string or an integral JSON number. Absent and empty values are 0.
func ParseValue(raw any) (int64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, true
	case string:
		if v == "" {
			return 0, true
		}
		if !isDigits(strings.TrimPrefix(v, "-")) {
			return 0, false
		}
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	case json.Number:
		return ParseValue(string(v))
	case float64:
		return integral(v)
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}

// ParseID parses a client-supplied sentence id: an integer in
// [0, MaxSentenceID].
func ParseID(raw any) (int64, bool) {
	n, ok := parseID(raw)
	return n, ok && n >= 0 && n <= MaxSentenceID
}

func parseID(raw any) (int64, bool) {
	switch v := raw.(type) {
	case string:
		if !isDigits(v) {
			return 0, false
		}
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	case json.Number:
		return parseID(string(v))
	case float64:
		return integral(v)
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}

// integral accepts only whole numbers a float64 holds exactly.
func integral(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.Abs(f) >= maxExactNumber {
		return 0, false
	}
	return int64(f), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
