package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateBookingRequest_Validate(t *testing.T) {
	valid := CreateBookingRequest{
		PropertyID:    "prop-1",
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "081-234-5678",
		PreferredDate: "2026-09-15",
		PreferredTime: "14:00",
		VisitType:     "video-call",
	}

	t.Run("valid request has no errors", func(t *testing.T) {
		assert.Empty(t, valid.Validate())
	})

	t.Run("every failing field is reported at once", func(t *testing.T) {
		req := CreateBookingRequest{
			PropertyID:    "prop-1",
			Name:          "Jo",
			Email:         "bad",
			Phone:         "123",
			PreferredDate: "",
			PreferredTime: "",
			VisitType:     "in-person",
		}

		errs := req.Validate()
		assert.Len(t, errs, 4)
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "phone")
		assert.Contains(t, errs, "preferred_date")
		assert.Contains(t, errs, "preferred_time")
		assert.NotContains(t, errs, "name")
	})

	t.Run("field rules", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(r *CreateBookingRequest)
			field  string
		}{
			{"missing property", func(r *CreateBookingRequest) { r.PropertyID = "" }, "property_id"},
			{"one-character name", func(r *CreateBookingRequest) { r.Name = "J" }, "name"},
			{"email without domain", func(r *CreateBookingRequest) { r.Email = "jane@" }, "email"},
			{"phone too short", func(r *CreateBookingRequest) { r.Phone = "08-123" }, "phone"},
			{"unknown visit type", func(r *CreateBookingRequest) { r.VisitType = "telepathy" }, "visit_type"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := valid
				tt.mutate(&req)

				errs := req.Validate()
				assert.Len(t, errs, 1)
				assert.Contains(t, errs, tt.field)
			})
		}
	})

	t.Run("phone digits may be separated by punctuation", func(t *testing.T) {
		req := valid
		req.Phone = "+66 (81) 234-5678"
		assert.Empty(t, req.Validate())
	})
}
