package dtos

type ApplicationCreateRequest struct {
	UserID      string `json:"userId"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	AppliedDate string `json:"appliedDate"`
	Status      string `json:"status"` // Defaults to "pending" if empty
	NextStep    string `json:"nextStep"`
	Notes       string `json:"notes"`
	JobURL      string `json:"jobUrl"`
}

// ApplicationUpdateRequest patches an application; nil fields are left untouched.
type ApplicationUpdateRequest struct {
	Status   *string `json:"status"`
	NextStep *string `json:"nextStep"`
	Notes    *string `json:"notes"`
}

type StatsResponse struct {
	Applications int64 `json:"applications"`
	Interviews   int64 `json:"interviews"`
	Skills       int   `json:"skills"`
}
