package issue_token

// IssueTokenRequest HTTP request model
type IssueTokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
