package handler

import (
	"strings"

	id "hostel/pkg/domain"
	dErrors "hostel/pkg/domain-errors"
)

type createFloorRequest struct {
	CenterID  string `json:"centerId"`
	Number    *int   `json:"number"`
	WomenOnly bool   `json:"womenOnly"`

	centerID id.CenterID
}

func (r *createFloorRequest) Validate() error {
	centerID, err := id.ParseCenterID(strings.TrimSpace(r.CenterID))
	if err != nil {
		return err
	}
	if r.Number == nil {
		return dErrors.New(dErrors.CodeValidation, "number is required")
	}
	r.centerID = centerID
	return nil
}

type createRoomRequest struct {
	FloorID     string `json:"floorId"`
	Number      string `json:"number"`
	KeyNumber   string `json:"keyNumber"`
	BadgeNumber string `json:"badgeNumber"`

	floorID id.FloorID
}

func (r *createRoomRequest) Validate() error {
	floorID, err := id.ParseFloorID(strings.TrimSpace(r.FloorID))
	if err != nil {
		return err
	}
	if strings.TrimSpace(r.Number) == "" {
		return dErrors.New(dErrors.CodeValidation, "number is required")
	}
	r.floorID = floorID
	return nil
}

// flagRequest carries a single boolean; a missing value is rejected rather
// than read as false.
type flagRequest struct {
	Value *bool `json:"value"`
}

func (r *flagRequest) Validate() error {
	if r.Value == nil {
		return dErrors.New(dErrors.CodeValidation, "value is required")
	}
	return nil
}
