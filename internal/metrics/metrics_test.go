package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCacheState(t *testing.T) {
	all := []string{"disconnected", "connecting", "connected", "unavailable"}

	SetCacheState("connected", all)
	assert.Equal(t, 1.0, testutil.ToFloat64(cacheState.WithLabelValues("connected")))
	assert.Equal(t, 0.0, testutil.ToFloat64(cacheState.WithLabelValues("disconnected")))

	SetCacheState("unavailable", all)
	assert.Equal(t, 0.0, testutil.ToFloat64(cacheState.WithLabelValues("connected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(cacheState.WithLabelValues("unavailable")))
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(savesTotal.WithLabelValues("critical", OutcomeSuccess))
	CountSave("critical", OutcomeSuccess)
	assert.Equal(t, before+1, testutil.ToFloat64(savesTotal.WithLabelValues("critical", OutcomeSuccess)))

	throttled := testutil.ToFloat64(emergencyBackupsTotal.WithLabelValues(OutcomeFailure))
	CountEmergencyBackup(false)
	assert.Equal(t, throttled+1, testutil.ToFloat64(emergencyBackupsTotal.WithLabelValues(OutcomeFailure)))

	fallbacks := testutil.ToFloat64(cacheFallbackTotal)
	CountCacheFallback()
	assert.Equal(t, fallbacks+1, testutil.ToFloat64(cacheFallbackTotal))

	syncs := testutil.ToFloat64(syncTotal.WithLabelValues("delta", "success"))
	CountSync("delta", "success")
	assert.Equal(t, syncs+1, testutil.ToFloat64(syncTotal.WithLabelValues("delta", "success")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	ObserveTier("memory", "save", true, time.Millisecond)
	ObserveRequest(http.MethodGet, "/api/progress/", http.StatusNotFound, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `save_keeper_store_tier_operation_duration_seconds_count{operation="save",outcome="success",tier="memory"}`))
	assert.True(t, strings.Contains(body, `status="404"`))
}
