package dto

type DecisionResponse struct {
	Action   string                 `json:"action"`
	Priority string                 `json:"priority"`
	Reason   string                 `json:"reason"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

type ExecutionResultResponse struct {
	Action  string `json:"action"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type EventOutcomeResponse struct {
	EventType string                    `json:"event_type"`
	Context   map[string]interface{}    `json:"context"`
	Decisions []DecisionResponse        `json:"decisions"`
	Results   []ExecutionResultResponse `json:"results"`
}
