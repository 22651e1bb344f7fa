package models

// SecondsInOneDay converts a retention period in days to epoch seconds.
const SecondsInOneDay = 24 * 60 * 60

type Submission struct {
	ID                       string      `bson:"_id" json:"id" example:"c12d3832-3c14-4922-a2b2-f8431581fa3c"`
	FormID                   string      `bson:"form_id" json:"form_id" example:"fce48fed-d644-4da0-9b31-c69bf612c3c5"`
	UserThatCompletedID      string      `bson:"user_that_completed_id" json:"user_that_completed_id"`
	SubmissionCreationTime   int64       `bson:"submission_creation_time" json:"submission_creation_time" example:"1678028760"`
	SubmissionExpirationTime int64       `bson:"submission_expiration_time" json:"submission_expiration_time" example:"1680620760"`
	CompletedDynamicFields   FieldValues `bson:"completed_dynamic_fields" json:"completed_dynamic_fields" swaggertype:"object"`
}

// SubmissionRequest is the body accepted when creating or updating a submission.
type SubmissionRequest struct {
	CompletedDynamicFields FieldValues `json:"completed_dynamic_fields" swaggertype:"object"`
}

// DeleteAllResponse reports how many submissions a bulk delete removed.
type DeleteAllResponse struct {
	Deleted int64 `json:"deleted"`
}
