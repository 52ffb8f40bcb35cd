package dto

// SubjectRequest is the body of subject create and update calls.
// @Description Subject create/update payload
type SubjectRequest struct {
	ID   string `json:"id,omitempty" validate:"omitempty,max=64"`
	Name string `json:"name" validate:"required,max=200"`
	Code string `json:"code" validate:"required,max=32"`
}

// SubjectResponse represents a subject in the API response
// @Description Subject information
type SubjectResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}
