package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func validRequest() CreateChargerRequest {
	return CreateChargerRequest{
		Name: "Station A",
		Location: &LocationRequest{
			Latitude:  floatPtr(12.9716),
			Longitude: floatPtr(77.5946),
		},
		PowerOutput:   floatPtr(50),
		ConnectorType: "Type 2",
	}
}

func TestCreateChargerRequest_Validate(t *testing.T) {
	t.Run("Valid request", func(t *testing.T) {
		req := validRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("Blank name", func(t *testing.T) {
		req := validRequest()
		req.Name = "   "

		err := req.Validate()

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Errors, "name is required")
	})

	t.Run("Coordinates out of range", func(t *testing.T) {
		req := validRequest()
		req.Location.Latitude = floatPtr(95)
		req.Location.Longitude = floatPtr(-200)

		err := req.Validate()

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Len(t, vErr.Errors, 2)
	})

	t.Run("Negative power output", func(t *testing.T) {
		req := validRequest()
		req.PowerOutput = floatPtr(-1)

		err := req.Validate()

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Errors, "power output must be a non-negative number")
	})

	t.Run("Invalid status", func(t *testing.T) {
		req := validRequest()
		req.Status = "Broken"

		err := req.Validate()

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestCreateChargerRequest_ToCharger(t *testing.T) {
	t.Run("Status defaults to Inactive", func(t *testing.T) {
		req := validRequest()
		charger := req.ToCharger()

		assert.Equal(t, StatusInactive, charger.Status)
	})

	t.Run("Explicit status is kept", func(t *testing.T) {
		req := validRequest()
		req.Status = StatusActive
		charger := req.ToCharger()

		assert.Equal(t, StatusActive, charger.Status)
	})

	t.Run("Name is trimmed", func(t *testing.T) {
		req := validRequest()
		req.Name = "  Station A  "
		charger := req.ToCharger()

		assert.Equal(t, "Station A", charger.Name)
	})
}

func TestUpdateChargerRequest_Validate(t *testing.T) {
	t.Run("Empty update is allowed", func(t *testing.T) {
		changes := UpdateChargerRequest{}
		assert.NoError(t, changes.Validate())
	})

	t.Run("Only supplied fields are checked", func(t *testing.T) {
		changes := UpdateChargerRequest{Status: strPtr(StatusActive)}
		assert.NoError(t, changes.Validate())
	})

	t.Run("Invalid connector type", func(t *testing.T) {
		changes := UpdateChargerRequest{ConnectorType: strPtr("USB-C")}

		err := changes.Validate()

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("Blank name rejected", func(t *testing.T) {
		changes := UpdateChargerRequest{Name: strPtr("  ")}

		err := changes.Validate()

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Errors, "name must not be empty")
	})
}
