package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/spotter-report-loader/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func windEvent() domain.Event {
	magnitude := 60.0
	units := domain.UnitsMph
	measured := true
	return domain.Event{
		EventTS:   1537483920000000,
		EventType: domain.EventTypeSpotterReport,
		Location: &domain.Location{
			Point: &domain.Coordinates{Lat: 43.112, Lon: -94.639999},
		},
		Report: &domain.Report{
			Hazard:      domain.HazardTypeWind,
			Magnitude:   &magnitude,
			Units:       &units,
			WasMeasured: &measured,
			Reporter:    "Test Human",
		},
		Text:  "Wind reported by Test Human. Strong winds measured at 60mph with anemometer",
		Title: "Report: Wind",
	}
}

func TestSerializeToMessage(t *testing.T) {
	ingested := time.Date(2018, 9, 20, 23, 0, 0, 0, time.UTC)
	event := windEvent()
	event.IngestTS = ingested.UnixMicro()

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, "1537483920000000:43.112000,-94.639999", string(msg.Key))
	assert.Contains(t, string(msg.Value), `"event_type":"sn_report"`)
	assert.Contains(t, string(msg.Value), `"hazard":"wind"`)
	assert.Contains(t, string(msg.Value), `"was_measured":true`)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("sn_report"), msg.Headers[0].Value)
	assert.Equal(t, "ingested_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(ingested.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessage_NoPointFallsBackToTimestampKey(t *testing.T) {
	event := windEvent()
	event.Location = nil

	msg, err := serializeToMessage(event)
	require.NoError(t, err)
	assert.Equal(t, "1537483920000000", string(msg.Key))
}

func TestStamped_UsesDomainClock(t *testing.T) {
	frozen := time.Date(2018, 9, 21, 6, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	stamped := windEvent().Stamped()

	assert.Equal(t, frozen.UnixMicro(), stamped.IngestTS)
}
