package endpoint

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quickcare/quickcare-api/model"
	"github.com/quickcare/quickcare-api/util"
	"github.com/stretchr/testify/assert"
)

func emergencyPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":    "Jane Doe",
		"phone":   "081234567890",
		"address": "123 Main St",
		"reason":  "Severe chest pain",
	}
}

func TestSubmitEmergencyReturnsRequestCode(t *testing.T) {
	r, db := setupEndpointTest(t)
	r.POST("/emergency", SubmitEmergency)

	w := performJSON(r, "POST", "/emergency", emergencyPayload())

	assertStatus(t, w, http.StatusCreated)
	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]interface{})

	code, ok := data["request_code"].(string)
	if !ok || !strings.HasPrefix(code, "EMG-") {
		t.Fatalf("expected EMG- request code, got %v", data["request_code"])
	}
	assert.Equal(t, "processing", data["status"])

	var stored model.EmergencyRequest
	if err := db.Where("request_code = ?", code).First(&stored).Error; err != nil {
		t.Fatalf("expected emergency persisted: %v", err)
	}
	assert.Equal(t, "Severe chest pain", stored.Reason)
	assert.Equal(t, "processing", stored.Status)
}

func TestSubmitEmergencyRejectsMissingFields(t *testing.T) {
	r, db := setupEndpointTest(t)
	r.POST("/emergency", SubmitEmergency)

	for _, missing := range []string{"name", "phone", "address", "reason"} {
		payload := emergencyPayload()
		payload[missing] = ""
		w := performJSON(r, "POST", "/emergency", payload)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("missing %s: expected 400, got %d", missing, w.Code)
		}
	}

	var count int64
	db.Model(&model.EmergencyRequest{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSubmitEmergencyResolvesCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"address":{"road":"Main Street","city":"Springfield"}}`))
	}))
	defer srv.Close()

	util.SetNominatimBaseURL(srv.URL)
	defer util.SetNominatimBaseURL("")

	r, db := setupEndpointTest(t)
	r.POST("/emergency", SubmitEmergency)

	payload := emergencyPayload()
	payload["latitude"] = 39.78121
	payload["longitude"] = -89.65032
	payload["accuracy"] = 12.5

	w := performJSON(r, "POST", "/emergency", payload)
	assertStatus(t, w, http.StatusCreated)
	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Main Street, Springfield", data["resolved_address"])

	var stored model.EmergencyRequest
	if err := db.Order("id desc").First(&stored).Error; err != nil {
		t.Fatalf("expected emergency persisted: %v", err)
	}
	assert.Equal(t, "Main Street, Springfield", stored.ResolvedAddress)
	assert.Equal(t, 39.78121, stored.Latitude)
}

func TestSubmitEmergencySurvivesGeocodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	util.SetNominatimBaseURL(srv.URL)
	defer util.SetNominatimBaseURL("")

	r, _ := setupEndpointTest(t)
	r.POST("/emergency", SubmitEmergency)

	payload := emergencyPayload()
	payload["latitude"] = 12.34567
	payload["longitude"] = 76.54321

	w := performJSON(r, "POST", "/emergency", payload)
	assertStatus(t, w, http.StatusCreated)
	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "", data["resolved_address"])
}
