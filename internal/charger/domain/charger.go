package domain

import (
	"strings"
	"time"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// ConnectorTypes lists the accepted connector values.
var ConnectorTypes = []string{"Type 1", "Type 2", "CCS", "CHAdeMO", "Tesla Supercharger"}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Charger struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Location      Location  `json:"location"`
	Status        string    `json:"status"`
	PowerOutput   float64   `json:"powerOutput"` // kW
	ConnectorType string    `json:"connectorType"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ValidationError collects per-field messages surfaced as a 400 response.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// LocationRequest uses pointers so that a literal 0 coordinate still
// satisfies the required binding.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type CreateChargerRequest struct {
	Name          string           `json:"name" binding:"required"`
	Location      *LocationRequest `json:"location" binding:"required"`
	Status        string           `json:"status"`
	PowerOutput   *float64         `json:"powerOutput" binding:"required"`
	ConnectorType string           `json:"connectorType" binding:"required"`
}

func validStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}

func validConnectorType(connectorType string) bool {
	for _, ct := range ConnectorTypes {
		if ct == connectorType {
			return true
		}
	}
	return false
}

func validateCoordinates(latitude, longitude *float64, errs []string) []string {
	if latitude != nil && (*latitude < -90 || *latitude > 90) {
		errs = append(errs, "latitude must be between -90 and 90")
	}
	if longitude != nil && (*longitude < -180 || *longitude > 180) {
		errs = append(errs, "longitude must be between -180 and 180")
	}
	return errs
}

func (r *CreateChargerRequest) Validate() error {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if r.Location == nil || r.Location.Latitude == nil || r.Location.Longitude == nil {
		errs = append(errs, "location with latitude and longitude is required")
	} else {
		errs = validateCoordinates(r.Location.Latitude, r.Location.Longitude, errs)
	}
	if r.Status != "" && !validStatus(r.Status) {
		errs = append(errs, "status must be Active or Inactive")
	}
	if r.PowerOutput == nil {
		errs = append(errs, "power output must be a number")
	} else if *r.PowerOutput < 0 {
		errs = append(errs, "power output must be a non-negative number")
	}
	if !validConnectorType(strings.TrimSpace(r.ConnectorType)) {
		errs = append(errs, "connector type must be one of: "+strings.Join(ConnectorTypes, ", "))
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ToCharger builds the record to persist, applying the Inactive default.
func (r *CreateChargerRequest) ToCharger() *Charger {
	status := r.Status
	if status == "" {
		status = StatusInactive
	}
	return &Charger{
		Name: strings.TrimSpace(r.Name),
		Location: Location{
			Latitude:  *r.Location.Latitude,
			Longitude: *r.Location.Longitude,
		},
		Status:        status,
		PowerOutput:   *r.PowerOutput,
		ConnectorType: strings.TrimSpace(r.ConnectorType),
	}
}

// UpdateChargerRequest is a partial update; nil fields are left untouched.
type UpdateChargerRequest struct {
	Name          *string          `json:"name"`
	Location      *LocationRequest `json:"location"`
	Status        *string          `json:"status"`
	PowerOutput   *float64         `json:"powerOutput"`
	ConnectorType *string          `json:"connectorType"`
}

func (r *UpdateChargerRequest) Validate() error {
	var errs []string
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if r.Location != nil {
		if r.Location.Latitude == nil || r.Location.Longitude == nil {
			errs = append(errs, "location with latitude and longitude is required")
		} else {
			errs = validateCoordinates(r.Location.Latitude, r.Location.Longitude, errs)
		}
	}
	if r.Status != nil && !validStatus(*r.Status) {
		errs = append(errs, "status must be Active or Inactive")
	}
	if r.PowerOutput != nil && *r.PowerOutput < 0 {
		errs = append(errs, "power output must be a non-negative number")
	}
	if r.ConnectorType != nil && !validConnectorType(strings.TrimSpace(*r.ConnectorType)) {
		errs = append(errs, "connector type must be one of: "+strings.Join(ConnectorTypes, ", "))
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
