package domain

// EventType tags which feed an event was ingested from.
type EventType string

// EventTypeSpotterReport marks events built from SpotterNetwork reports.
const EventTypeSpotterReport EventType = "sn_report"

// Units is the closed set of magnitude units a spotter report can carry.
type Units string

const (
	UnitsMph    Units = "mph"
	UnitsInches Units = "inches"
)

// HazardType is the broad hazard category used by the storage domain.
type HazardType string

const (
	HazardTypeTornado      HazardType = "tornado"
	HazardTypeFunnel       HazardType = "funnel"
	HazardTypeWallCloud    HazardType = "wall_cloud"
	HazardTypeHail         HazardType = "hail"
	HazardTypeWind         HazardType = "wind"
	HazardTypeFlood        HazardType = "flood"
	HazardTypeOther        HazardType = "other"
	HazardTypeFreezingRain HazardType = "freezing_rain"
	HazardTypeSnow         HazardType = "snow"
)

// Coordinates is a WGS-84 latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location describes where a report was made. Spotter reports only ever
// supply an exact point.
type Location struct {
	Point *Coordinates `json:"point,omitempty"`
}

// Report holds the spotter-supplied measurement details of an event.
// Magnitude and Units are set together or not at all, and never from both
// the size and speed fields of the same report. WasMeasured is tri-state:
// nil means the report did not say, true means the value was instrument-read.
type Report struct {
	Hazard      HazardType `json:"hazard"`
	HazardKind  string     `json:"hazard_kind,omitempty"` // sub-kind label, set for the broad Other type
	Magnitude   *float64   `json:"magnitude,omitempty"`
	Units       *Units     `json:"units,omitempty"`
	WasMeasured *bool      `json:"was_measured,omitempty"`
	Reporter    string     `json:"reporter"`
}

// Event is the structured record handed to the downstream store. The shape
// is owned by the storage domain; this service is responsible for populating
// it correctly. Timestamps are microseconds since epoch, UTC.
type Event struct {
	EventTS   int64     `json:"event_ts"`
	EventType EventType `json:"event_type"`
	IngestTS  int64     `json:"ingest_ts"` // stamped by the store on put
	Location  *Location `json:"location,omitempty"`
	Report    *Report   `json:"report,omitempty"`
	Text      string    `json:"text,omitempty"`
	Title     string    `json:"title"`
}

// Stamped returns a copy of the event with IngestTS set from the domain
// clock. Called by the store adapter at put time.
func (e Event) Stamped() Event {
	e.IngestTS = clock.Now().UTC().UnixMicro()
	return e
}
