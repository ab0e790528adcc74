package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWellnessRequestAcceptsZeroValues(t *testing.T) {
	// Zero stress and zero hours of sleep are both valid check-in values;
	// the pointer fields keep the required rule from rejecting them.
	body := []byte(`{"date":"2026-09-01","stressLevel":0,"sleepHours":0,"dietQuality":2}`)

	var req CreateWellnessRequest
	require.NoError(t, binding.JSON.BindBody(body, &req))
	require.NotNil(t, req.StressLevel)
	require.NotNil(t, req.SleepHours)
	assert.Equal(t, 0, *req.StressLevel)
	assert.Equal(t, 0.0, *req.SleepHours)
}

func TestCreateWellnessRequestRequiredFields(t *testing.T) {
	var req CreateWellnessRequest
	err := binding.JSON.BindBody([]byte(`{"date":"2026-09-01","stressLevel":2,"dietQuality":2}`), &req)
	assert.Error(t, err, "missing sleepHours must be rejected")

	req = CreateWellnessRequest{}
	err = binding.JSON.BindBody([]byte(`{"date":"2026-09-01","sleepHours":7,"dietQuality":2}`), &req)
	assert.Error(t, err, "missing stressLevel must be rejected")

	req = CreateWellnessRequest{}
	err = binding.JSON.BindBody([]byte(`{"date":"2026-09-01","stressLevel":2,"sleepHours":25,"dietQuality":2}`), &req)
	assert.Error(t, err, "sleepHours above 24 must be rejected")
}
