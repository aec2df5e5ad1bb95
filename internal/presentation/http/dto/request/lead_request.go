package request

import (
	"github.com/leadhive/leadhive-api/internal/application/service"
)

// CreateLeadRequest carries the accepted lead fields. Anything else in the
// payload is dropped on decode.
type CreateLeadRequest struct {
	Name              string        `json:"name" binding:"required"`
	Email             *string       `json:"email"`
	Phone             *string       `json:"phone"`
	Company           *string       `json:"company"`
	Source            string        `json:"source"`
	Status            string        `json:"status"`
	Priority          *string       `json:"priority"`
	Budget            OptionalFloat `json:"budget"`
	AssignedTo        OptionalUUID  `json:"assigned_to"`
	InterestedService *string       `json:"interested_service"`
	NextFollowUp      OptionalTime  `json:"next_follow_up"`
	Notes             *string       `json:"notes"`
	PipelineID        OptionalUUID  `json:"pipeline_id"`
	StageID           OptionalUUID  `json:"stage_id"`
}

// ToInput converts the request to the service input
func (r *CreateLeadRequest) ToInput() *service.CreateLeadInput {
	return &service.CreateLeadInput{
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		Company:           r.Company,
		Source:            r.Source,
		Status:            r.Status,
		Priority:          r.Priority,
		Budget:            r.Budget.Ptr(),
		AssignedTo:        r.AssignedTo.Ptr(),
		InterestedService: r.InterestedService,
		NextFollowUp:      r.NextFollowUp.Ptr(),
		Notes:             r.Notes,
		PipelineID:        r.PipelineID.Ptr(),
		StageID:           r.StageID.Ptr(),
	}
}

// UpdateLeadRequest carries a partial lead update
type UpdateLeadRequest struct {
	Name              *string       `json:"name"`
	Email             *string       `json:"email"`
	Phone             *string       `json:"phone"`
	Company           *string       `json:"company"`
	Source            *string       `json:"source"`
	Status            *string       `json:"status"`
	Priority          *string       `json:"priority"`
	Budget            OptionalFloat `json:"budget"`
	AssignedTo        OptionalUUID  `json:"assigned_to"`
	InterestedService *string       `json:"interested_service"`
	NextFollowUp      OptionalTime  `json:"next_follow_up"`
	Notes             *string       `json:"notes"`
	PipelineID        OptionalUUID  `json:"pipeline_id"`
	StageID           OptionalUUID  `json:"stage_id"`
}

// BulkDeleteLeadsRequest names the leads to delete in one call
type BulkDeleteLeadsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// BulkUpdateLeadsRequest applies the same change to several leads at once
type BulkUpdateLeadsRequest struct {
	IDs        []string     `json:"ids" binding:"required,min=1"`
	Status     *string      `json:"status"`
	AssignedTo OptionalUUID `json:"assigned_to"`
}

// ImportLeadRequest is one record of a bulk lead import
type ImportLeadRequest struct {
	ID OptionalUUID `json:"id"`
	CreateLeadRequest
}

// ToRecord converts the request to the service import record
func (r *ImportLeadRequest) ToRecord() service.ImportLeadRecord {
	return service.ImportLeadRecord{
		ID:              r.ID.Ptr(),
		CreateLeadInput: *r.CreateLeadRequest.ToInput(),
	}
}
