package health

const statusOK = "OK"

type checkInput struct{}

type checkOutput struct {
	Body Status
}

// Status is the body of a successful health check.
type Status struct {
	Status string `json:"status" example:"OK" doc:"OK when the store answers"`
}
