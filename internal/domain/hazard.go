package domain

// Hazard is the closed set of report categories the feed can describe.
// Values match the feed's decimal hazard codes 1-10.
type Hazard int

const (
	HazardTornado Hazard = iota + 1
	HazardFunnel
	HazardWallCloud
	HazardHail
	HazardWind
	HazardFlood
	HazardFlashFlood
	HazardOther
	HazardFreezingRain
	HazardSnow
)

// OtherHazardKind is the fixed sub-kind label carried by the broad Other
// type for catch-all spotter reports.
const OtherHazardKind = "SN Other"

// HazardByCode resolves a feed hazard code ("1".."10", exact decimal text)
// to its hazard kind. Any other input fails with UnknownHazardCodeError.
func HazardByCode(code string) (Hazard, error) {
	switch code {
	case "1":
		return HazardTornado, nil
	case "2":
		return HazardFunnel, nil
	case "3":
		return HazardWallCloud, nil
	case "4":
		return HazardHail, nil
	case "5":
		return HazardWind, nil
	case "6":
		return HazardFlood, nil
	case "7":
		return HazardFlashFlood, nil
	case "8":
		return HazardOther, nil
	case "9":
		return HazardFreezingRain, nil
	case "10":
		return HazardSnow, nil
	default:
		return 0, &UnknownHazardCodeError{Code: code}
	}
}

// Type maps a hazard kind to the broader type used by the storage domain.
// Flash floods share the flood broad type; Other keeps its own broad type
// with the OtherHazardKind sub-kind label set on the report.
func (h Hazard) Type() HazardType {
	switch h {
	case HazardTornado:
		return HazardTypeTornado
	case HazardFunnel:
		return HazardTypeFunnel
	case HazardWallCloud:
		return HazardTypeWallCloud
	case HazardHail:
		return HazardTypeHail
	case HazardWind:
		return HazardTypeWind
	case HazardFlood, HazardFlashFlood:
		return HazardTypeFlood
	case HazardFreezingRain:
		return HazardTypeFreezingRain
	case HazardSnow:
		return HazardTypeSnow
	default:
		return HazardTypeOther
	}
}

// String returns the display name used in event titles and narrative text.
func (h Hazard) String() string {
	switch h {
	case HazardTornado:
		return "Tornado"
	case HazardFunnel:
		return "Funnel"
	case HazardWallCloud:
		return "Wall Cloud"
	case HazardHail:
		return "Hail"
	case HazardWind:
		return "Wind"
	case HazardFlood:
		return "Flood"
	case HazardFlashFlood:
		return "Flash Flood"
	case HazardFreezingRain:
		return "Freezing Rain"
	case HazardSnow:
		return "Snow"
	default:
		return "Other"
	}
}
