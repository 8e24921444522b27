package models

// CallerIdentity is the identity signal issued by the auth collaborator. This
// service consumes it only to select a presence backend; it performs no
// authorization.
type CallerIdentity struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email,omitempty"`
}
