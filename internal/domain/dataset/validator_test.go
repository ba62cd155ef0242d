package dataset

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    int64
		wantErr bool
	}{
		{name: "absent", raw: nil, want: 0},
		{name: "empty string", raw: "", want: 0},
		{name: "positive string", raw: "42", want: 42},
		{name: "negative string", raw: "-5", want: -5},
		{name: "zero", raw: "0", want: 0},
		{name: "trailing minus", raw: "5-", wantErr: true},
		{name: "letters", raw: "abc", wantErr: true},
		{name: "double minus", raw: "--5", wantErr: true},
		{name: "lone minus", raw: "-", wantErr: true},
		{name: "plus sign", raw: "+5", wantErr: true},
		{name: "spaces", raw: " 5", wantErr: true},
		{name: "decimal string", raw: "1.5", wantErr: true},
		{name: "overflow", raw: "99999999999999999999", wantErr: true},
		{name: "json integer", raw: float64(7), want: 7},
		{name: "json negative integer", raw: float64(-3), want: -3},
		{name: "json fraction", raw: 2.5, wantErr: true},
		{name: "largest exact json number", raw: float64(1<<53 - 1), want: 1<<53 - 1},
		{name: "json number beyond float precision", raw: float64(9007199254740993), wantErr: true},
		{name: "negative json number beyond float precision", raw: float64(-9007199254740993), wantErr: true},
		{name: "large string stays exact", raw: "9007199254740993", want: 9007199254740993},
		{name: "bool", raw: true, wantErr: true},
		{name: "object", raw: map[string]any{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseValue(tt.raw)
			if tt.wantErr {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int64
		ok   bool
	}{
		{name: "string", raw: "12", want: 12, ok: true},
		{name: "number", raw: float64(3), want: 3, ok: true},
		{name: "negative string", raw: "-1", ok: false},
		{name: "negative number", raw: float64(-1), ok: false},
		{name: "empty", raw: "", ok: false},
		{name: "nil", raw: nil, ok: false},
		{name: "fraction", raw: 1.5, ok: false},
		{name: "text", raw: "x1", ok: false},
		{name: "ceiling", raw: strconv.FormatInt(MaxSentenceID, 10), want: MaxSentenceID, ok: true},
		{name: "above ceiling", raw: strconv.FormatInt(MaxSentenceID+1, 10), ok: false},
		{name: "max int64", raw: "9223372036854775807", ok: false},
		{name: "number beyond float precision", raw: float64(9007199254740993), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseID(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func assertInvalid(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, msg, err.Error())
}

func TestRequestValidator_ValidateCreate(t *testing.T) {
	v := NewRequestValidator()
	label := "score"
	longLabel := strings.Repeat("l", 51)

	tests := []struct {
		name    string
		req     CreateRequest
		wantMsg string
	}{
		{
			name:    "missing name",
			req:     CreateRequest{Password: "pw"},
			wantMsg: MsgNameAndPassword,
		},
		{
			name:    "missing password",
			req:     CreateRequest{Name: "n"},
			wantMsg: MsgNameAndPassword,
		},
		{
			name:    "name too long",
			req:     CreateRequest{Name: strings.Repeat("n", 51), Password: "pw"},
			wantMsg: MsgNameTooLong,
		},
		{
			name:    "value name too long",
			req:     CreateRequest{Name: "n", Password: "pw", ValueName: &longLabel},
			wantMsg: MsgValueNameTooLong,
		},
		{
			name:    "password too long",
			req:     CreateRequest{Name: "n", Password: strings.Repeat("p", 73)},
			wantMsg: MsgPasswordTooLong,
		},
		{
			name: "empty sentence",
			req: CreateRequest{Name: "n", Password: "pw", Sentences: []SentenceInput{
				{Text: "ok"}, {Text: ""},
			}},
			wantMsg: MsgEmptySentence,
		},
		{
			name: "sentence of 251 characters",
			req: CreateRequest{Name: "n", Password: "pw", Sentences: []SentenceInput{
				{Text: strings.Repeat("s", 251)},
			}},
			wantMsg: MsgSentencesTooLong,
		},
		{
			name: "invalid value",
			req: CreateRequest{Name: "n", Password: "pw", Sentences: []SentenceInput{
				{Text: "ok", Value: "5-"},
			}},
			wantMsg: MsgInvalidValues,
		},
		{
			name: "valid",
			req: CreateRequest{Name: "n", Password: "pw", IsOpen: true, ValueName: &label, Sentences: []SentenceInput{
				{Text: "a", Value: "-5"}, {Text: "b"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, sentences, err := v.ValidateCreate(tt.req)
			if tt.wantMsg != "" {
				assertInvalid(t, err, tt.wantMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.Name, ds.Name)
			assert.True(t, ds.IsOpen)
			assert.Equal(t, &label, ds.ValueName)
			require.Len(t, sentences, 2)
			assert.Equal(t, int64(-5), sentences[0].Value)
			assert.Equal(t, int64(0), sentences[1].Value)
		})
	}
}

func TestRequestValidator_LengthsCountRunes(t *testing.T) {
	v := NewRequestValidator()

	// 250 two-byte runes are 500 bytes but still within the limit
	_, err := v.ValidateAdd(AddSentenceRequest{NewText: strings.Repeat("é", 250)})
	assert.NoError(t, err)

	_, _, err = v.ValidateCreate(CreateRequest{Name: strings.Repeat("ø", 50), Password: "pw"})
	assert.NoError(t, err)
}

func TestRequestValidator_ValidateAdd(t *testing.T) {
	v := NewRequestValidator()

	tests := []struct {
		name      string
		req       AddSentenceRequest
		wantMsg   string
		wantValue int64
	}{
		{name: "no text", req: AddSentenceRequest{}, wantMsg: MsgNoSentence},
		{name: "too long", req: AddSentenceRequest{NewText: strings.Repeat("x", 251)}, wantMsg: MsgSentenceTooLong},
		{name: "bad value", req: AddSentenceRequest{NewText: "hi", NewValue: "abc"}, wantMsg: MsgInvalidValue},
		{name: "exactly 250", req: AddSentenceRequest{NewText: strings.Repeat("x", 250)}},
		{name: "negative value", req: AddSentenceRequest{NewText: "hi", NewValue: "-5"}, wantValue: -5},
		{name: "numeric value", req: AddSentenceRequest{NewText: "hi", NewValue: float64(9)}, wantValue: 9},
		{name: "inexact numeric value", req: AddSentenceRequest{NewText: "hi", NewValue: float64(9007199254740993)}, wantMsg: MsgInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := v.ValidateAdd(tt.req)
			if tt.wantMsg != "" {
				assertInvalid(t, err, tt.wantMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.NewText, s.Text)
			assert.Equal(t, tt.wantValue, s.Value)
		})
	}
}

func TestRequestValidator_ValidateEdit(t *testing.T) {
	v := NewRequestValidator()
	name := "renamed"
	empty := ""
	yes := true

	t.Run("all batches", func(t *testing.T) {
		ch, err := v.ValidateEdit(EditRequest{
			NewName:           &name,
			NewIsOpen:         &yes,
			NewValueName:      &empty,
			NewSentences:      []SentenceInput{{Text: "new", Value: "3"}},
			EditedSentences:   []EditedSentenceInput{{ID: "10", Text: "edited", Value: float64(-2)}},
			SentencesToRemove: []any{"4", float64(5)},
		})
		require.NoError(t, err)
		assert.Equal(t, &name, ch.Name)
		assert.Equal(t, &yes, ch.IsOpen)
		assert.Nil(t, ch.UseValue)
		assert.Nil(t, ch.ValueName)
		assert.Equal(t, []Sentence{{Text: "new", Value: 3}}, ch.Insert)
		assert.Equal(t, []Sentence{{ID: 10, Text: "edited", Value: -2}}, ch.Upsert)
		assert.Equal(t, []int64{4, 5}, ch.Remove)
	})

	t.Run("empty new name is ignored", func(t *testing.T) {
		ch, err := v.ValidateEdit(EditRequest{NewName: &empty})
		require.NoError(t, err)
		assert.Nil(t, ch.Name)
		assert.True(t, ch.Empty())
	})

	tests := []struct {
		name    string
		req     EditRequest
		wantMsg string
	}{
		{
			name:    "new sentence too long",
			req:     EditRequest{NewSentences: []SentenceInput{{Text: strings.Repeat("x", 251)}}},
			wantMsg: MsgSentencesTooLong,
		},
		{
			name:    "edited sentence too long",
			req:     EditRequest{EditedSentences: []EditedSentenceInput{{ID: "1", Text: strings.Repeat("x", 251)}}},
			wantMsg: MsgSentencesTooLong,
		},
		{
			name:    "edited sentence without id",
			req:     EditRequest{EditedSentences: []EditedSentenceInput{{Text: "ok"}}},
			wantMsg: MsgInvalidEditedID,
		},
		{
			name:    "edited id above ceiling",
			req:     EditRequest{EditedSentences: []EditedSentenceInput{{ID: "9223372036854775807", Text: "ok"}}},
			wantMsg: MsgInvalidEditedID,
		},
		{
			name:    "edited value beyond float precision",
			req:     EditRequest{EditedSentences: []EditedSentenceInput{{ID: "1", Text: "ok", Value: float64(9007199254740993)}}},
			wantMsg: MsgInvalidValues,
		},
		{
			name:    "bad removal id",
			req:     EditRequest{SentencesToRemove: []any{"1", "x"}},
			wantMsg: MsgInvalidRemove,
		},
		{
			name:    "new sentences checked before removals",
			req:     EditRequest{NewSentences: []SentenceInput{{Text: ""}}, SentencesToRemove: []any{"x"}},
			wantMsg: MsgEmptySentence,
		},
		{
			name:    "removals checked before edited sentences",
			req:     EditRequest{SentencesToRemove: []any{"x"}, EditedSentences: []EditedSentenceInput{{ID: "1", Text: ""}}},
			wantMsg: MsgInvalidRemove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateEdit(tt.req)
			assertInvalid(t, err, tt.wantMsg)
		})
	}
}
