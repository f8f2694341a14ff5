package request

// JoinRequest is the request body for registering a team
type JoinRequest struct {
	TeamName string   `json:"team_name"`
	Members  []string `json:"members"`
}

// SubmitRequest is the request body for submitting a round choice
type SubmitRequest struct {
	TeamID      string `json:"team_id"`
	RoundNumber int    `json:"round_number"`
	Choice      string `json:"choice"`
}
