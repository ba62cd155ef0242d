package dataset

import "datasets/internal/domain/dataset"

type idInput struct {
	ID string `path:"id" example:"1" doc:"Dataset id"`
}

type listOutput struct {
	Body []summaryResponse
}

type summaryResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	IsOpen bool   `json:"is_open"`
}

type getOutput struct {
	Body datasetResponse
}

type datasetResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	IsOpen    bool               `json:"is_open"`
	UseValue  bool               `json:"use_value"`
	ValueName *string            `json:"value_name"`
	Sentences []sentenceResponse `json:"sentences"`
}

type sentenceResponse struct {
	ID    int64  `json:"id"`
	Text  string `json:"text"`
	Value int64  `json:"value"`
}

type passwordInput struct {
	ID   string `path:"id" example:"1" doc:"Dataset id"`
	Body *dataset.PasswordRequest
}

type addInput struct {
	ID   string `path:"id" example:"1" doc:"Dataset id"`
	Body *dataset.AddSentenceRequest
}

type createInput struct {
	Body *dataset.CreateRequest
}

type editInput struct {
	ID   string `path:"id" example:"1" doc:"Dataset id"`
	Body *dataset.EditRequest
}

type messageOutput struct {
	Body messageResponse
}

type messageResponse struct {
	Message string `json:"message" example:"Verified"`
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	Message string `json:"message" example:"Dataset added successfully"`
	ID      int64  `json:"id"`
}

// bodyOf treats an absent request body as an empty object.
func bodyOf[T any](body *T) T {
	if body == nil {
		var zero T
		return zero
	}
	return *body
}

func toSummaries(items []dataset.Summary) []summaryResponse {
	out := make([]summaryResponse, 0, len(items))
	for _, it := range items {
		out = append(out, summaryResponse{ID: it.ID, Name: it.Name, IsOpen: it.IsOpen})
	}
	return out
}

func toDatasetResponse(ds *dataset.Dataset) datasetResponse {
	sentences := make([]sentenceResponse, 0, len(ds.Sentences))
	for _, s := range ds.Sentences {
		sentences = append(sentences, sentenceResponse{ID: s.ID, Text: s.Text, Value: s.Value})
	}
	return datasetResponse{
		ID:        ds.ID,
		Name:      ds.Name,
		IsOpen:    ds.IsOpen,
		UseValue:  ds.UseValue,
		ValueName: ds.ValueName,
		Sentences: sentences,
	}
}
