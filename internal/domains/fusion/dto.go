package fusion

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// StartFusionRequest - POST /v1/fusion
type StartFusionRequest struct {
	CandidateIDs []uuid.UUID `json:"candidate_ids"`
}

func (r StartFusionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CandidateIDs,
			validation.Required.Error("candidate_ids is required"),
			validation.Length(2, 0).ErrorObject(validation.NewError("invalid_selection", ErrInvalidSelection.Error())),
		),
	)
}

// ChooseMasterRequest - POST /v1/fusion/:id/master
type ChooseMasterRequest struct {
	// Master is 1-based into the session's candidate list.
	Master int `json:"master"`
}

func (r ChooseMasterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Master,
			validation.Required.Error("master is required"),
			validation.Min(1).ErrorObject(validation.NewError("invalid_master", ErrInvalidMaster.Error())),
		),
	)
}
