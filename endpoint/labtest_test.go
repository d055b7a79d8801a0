package endpoint

import (
	"net/http"
	"testing"

	"github.com/quickcare/quickcare-api/model"
	"github.com/stretchr/testify/assert"
)

func completeLabPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":             "Jane Doe",
		"age":              "30",
		"blood_group":      "O+",
		"sex":              "female",
		"mobile":           "081234567890",
		"address":          "123 Main St",
		"selected_tests":   []string{"Complete Blood Count (CBC)", "Lipid Profile"},
		"date":             "2026-09-14",
		"time":             "09:00 AM",
		"alternative_time": "11:00 AM",
	}
}

func TestBookLabTestPersistsBooking(t *testing.T) {
	r, db := setupEndpointTest(t)
	user := createTestUser(t, db, "jane.doe", "password123", 2)
	r.POST("/labtest", asUser(user.ID, user.RoleID), BookLabTest)

	w := performJSON(r, "POST", "/labtest", completeLabPayload())

	assertStatus(t, w, http.StatusCreated)
	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]interface{})
	assert.NotZero(t, data["booking_id"])

	confirmation := data["confirmation"].(map[string]interface{})
	assert.Equal(t, "Jane Doe", confirmation["name"])
	assert.Equal(t, "09:00 AM", confirmation["time"])

	var booking model.LabBooking
	if err := db.First(&booking).Error; err != nil {
		t.Fatalf("expected booking persisted: %v", err)
	}
	assert.Equal(t, user.ID, booking.UserID)
	assert.Equal(t, "Complete Blood Count (CBC),Lipid Profile", booking.Tests)
}

func TestBookLabTestRejectsIncompleteIntake(t *testing.T) {
	r, db := setupEndpointTest(t)
	user := createTestUser(t, db, "jane.doe", "password123", 2)
	r.POST("/labtest", asUser(user.ID, user.RoleID), BookLabTest)

	cases := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing name", func(p map[string]interface{}) { p["name"] = "" }},
		{"missing mobile", func(p map[string]interface{}) { p["mobile"] = "" }},
		{"no tests selected", func(p map[string]interface{}) { p["selected_tests"] = []string{} }},
		{"missing date", func(p map[string]interface{}) { p["date"] = "" }},
		{"missing alternative time", func(p map[string]interface{}) { p["alternative_time"] = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := completeLabPayload()
			tc.mutate(payload)
			w := performJSON(r, "POST", "/labtest", payload)
			assertStatus(t, w, http.StatusBadRequest)
		})
	}

	// Nothing persisted across all rejected submissions.
	var count int64
	db.Model(&model.LabBooking{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestBookLabTestRejectsUnknownBloodGroup(t *testing.T) {
	r, db := setupEndpointTest(t)
	user := createTestUser(t, db, "jane.doe", "password123", 2)
	r.POST("/labtest", asUser(user.ID, user.RoleID), BookLabTest)

	payload := completeLabPayload()
	payload["blood_group"] = "Z+"
	w := performJSON(r, "POST", "/labtest", payload)

	assertStatus(t, w, http.StatusBadRequest)

	var count int64
	db.Model(&model.LabBooking{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLabTestCatalog(t *testing.T) {
	r, _ := setupEndpointTest(t)
	r.GET("/labtest/catalog", LabTestCatalog)

	w := serveRequest(r, newRequestWithSession("GET", "/labtest/catalog", ""))
	resp := decodeResponse(t, w)
	assertSuccessResponse(t, w, resp)

	data := resp["data"].(map[string]interface{})
	categories := data["categories"].(map[string]interface{})
	assert.NotEmpty(t, categories)
	bloodGroups := data["blood_groups"].([]interface{})
	assert.Len(t, bloodGroups, 8)
}
