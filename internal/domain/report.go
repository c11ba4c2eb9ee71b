package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// reportPattern extracts every typed field of a report line in one pass.
// The "\\n" sequences match the feed's literal backslash-n escapes, not real
// newlines. Size and mph are optional and mutually exclusive; the measured
// marker only ever follows mph. The hazard code is one or two digits so that
// code 10 (Snow) is reachable.
const reportPattern = `Icon: (?P<lat>\d{2}\.\d{6}),(?P<lon>-\d{2,3}\.\d{6}),000,\d,(?P<code>\d{1,2}),.Reported By: (?P<reporter>.+)\\n.+\\nTime: (?P<ts>.+) UTC(?:\\nSize: (?P<size>\d{1,2}\.\d{2}).+?)*(?:\\n(?P<mph>\d{1,3}) mph)*(?P<measured> \[Measured\])*.+otes: (?P<notes>.+).$`

// reportTimeLayout is the fixed timestamp format inside a report,
// interpreted as UTC.
const reportTimeLayout = "2006-01-02 15:04:05"

var reportRe = regexp.MustCompile(reportPattern)

// Parser converts raw report lines into events. It is stateless aside from
// the shared compiled pattern and safe for concurrent use.
type Parser struct {
	re *regexp.Regexp
}

// NewParser returns a Parser backed by the shared compiled report pattern.
func NewParser() *Parser {
	return &Parser{re: reportRe}
}

// Parse extracts a structured event from one raw report line.
//
// It returns (nil, nil) for suppressed reports: hazard Other with notes
// exactly "None" carries no actionable information and is deliberately
// dropped. Lines that do not match the report pattern, carry an unknown
// hazard code, or have an unparseable timestamp fail with
// *MalformedReportError. A failure never yields a partial event.
func (p *Parser) Parse(line string) (*Event, error) {
	m := p.re.FindStringSubmatch(line)
	if m == nil {
		return nil, &MalformedReportError{Reason: "invalid report format"}
	}
	group := func(name string) string {
		return m[p.re.SubexpIndex(name)]
	}

	hazard, err := HazardByCode(group("code"))
	if err != nil {
		return nil, &MalformedReportError{Reason: "unresolvable hazard code", Err: err}
	}

	notes := group("notes")
	reporter := group("reporter")

	// Other/None reports are worthless; drop them before building anything.
	if hazard == HazardOther && notes == "None" {
		return nil, nil
	}

	report := &Report{
		Hazard:   hazard.Type(),
		Reporter: reporter,
	}
	if report.Hazard == HazardTypeOther {
		report.HazardKind = OtherHazardKind
	}

	if group("measured") != "" {
		measured := true
		report.WasMeasured = &measured
	}

	// Speed wins over size; they are mutually exclusive on the wire but the
	// inference order is fixed regardless.
	if mph := group("mph"); mph != "" {
		magnitude, err := strconv.ParseFloat(mph, 64)
		if err != nil {
			return nil, &MalformedReportError{Reason: "bad speed value", Err: err}
		}
		units := UnitsMph
		report.Magnitude = &magnitude
		report.Units = &units
	} else if size := group("size"); size != "" {
		magnitude, err := strconv.ParseFloat(size, 64)
		if err != nil {
			return nil, &MalformedReportError{Reason: "bad size value", Err: err}
		}
		units := UnitsInches
		report.Magnitude = &magnitude
		report.Units = &units
	}

	lat, err := strconv.ParseFloat(group("lat"), 64)
	if err != nil {
		return nil, &MalformedReportError{Reason: "bad coordinate value", Err: err}
	}
	lon, err := strconv.ParseFloat(group("lon"), 64)
	if err != nil {
		return nil, &MalformedReportError{Reason: "bad coordinate value", Err: err}
	}

	eventTime, err := time.Parse(reportTimeLayout, group("ts"))
	if err != nil {
		return nil, &MalformedReportError{Reason: "unparseable report time", Err: err}
	}

	text := fmt.Sprintf("%s reported by %s", hazard, reporter)
	if notes != "None" {
		text = fmt.Sprintf("%s. %s", text, notes)
	}

	return &Event{
		EventTS:   eventTime.UTC().UnixMicro(),
		EventType: EventTypeSpotterReport,
		Location:  &Location{Point: &Coordinates{Lat: lat, Lon: lon}},
		Report:    report,
		Text:      text,
		Title:     fmt.Sprintf("Report: %s", hazard),
	}, nil
}
