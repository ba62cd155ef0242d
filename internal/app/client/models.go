package client

import "datasets/internal/domain/dataset"

type Summary struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	IsOpen bool   `json:"is_open"`
}

type Sentence struct {
	ID    int64  `json:"id"`
	Text  string `json:"text"`
	Value int64  `json:"value"`
}

type Dataset struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	IsOpen    bool       `json:"is_open"`
	UseValue  bool       `json:"use_value"`
	ValueName *string    `json:"value_name"`
	Sentences []Sentence `json:"sentences"`
}

// Request bodies are shared with the server.
type (
	CreateRequest  = dataset.CreateRequest
	EditRequest    = dataset.EditRequest
	SentenceInput  = dataset.SentenceInput
	EditedSentence = dataset.EditedSentenceInput
)

type messageResponse struct {
	Message string `json:"message"`
}

type createResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
