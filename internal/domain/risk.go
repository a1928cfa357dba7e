package domain

import "fmt"

// RiskLevel is the discrete risk tier assigned to a city.
type RiskLevel string

const (
	RiskSafe    RiskLevel = "SAFE"
	RiskCaution RiskLevel = "CAUTION"
	RiskDanger  RiskLevel = "DANGER"
)

// Reason strings, appended in rule declaration order.
const (
	ReasonHeavyPrecipitation = "heavy precipitation"
	ReasonHighWindSpeed      = "high wind speed"
	ReasonHighTemperatureMax = "high maximum temperature"
	ReasonLowTemperatureMin  = "low minimum temperature"
	ReasonLowPressure        = "low atmospheric pressure"
	ReasonHighRadiation      = "high direct radiation"

	ReasonElevatedPrecipitation = "elevated precipitation"
	ReasonElevatedWindSpeed     = "elevated wind speed"
	ReasonElevatedTemperature   = "elevated maximum temperature"
	ReasonNearFreezing          = "near-freezing minimum temperature"
	ReasonFallingPressure       = "reduced atmospheric pressure"
	ReasonElevatedRadiation     = "elevated direct radiation"
)

// Policy maps reduced statistics to a risk tier plus the reasons that fired.
// Implementations must be pure and deterministic.
type Policy interface {
	Name() string
	Classify(s Statistics) (RiskLevel, []string)
}

// Thresholds holds one escalation boundary per criterion. Precipitation,
// wind, maximum temperature and radiation fire at >=, minimum temperature
// fires at <, pressure fires at <=.
type Thresholds struct {
	PrecipitationSum   float64
	WindSpeedMax       float64
	TemperatureMax     float64
	TemperatureMin     float64
	PressureAvg        float64
	DirectRadiationAvg float64
}

// DangerThresholds are the canonical DANGER boundaries shared by all policies.
var DangerThresholds = Thresholds{
	PrecipitationSum:   50,
	WindSpeedMax:       50,
	TemperatureMax:     40,
	TemperatureMin:     -5,
	PressureAvg:        900,
	DirectRadiationAvg: 500,
}

// CautionThresholds are the looser boundaries of the three-tier variant.
var CautionThresholds = Thresholds{
	PrecipitationSum:   30,
	WindSpeedMax:       35,
	TemperatureMax:     35,
	TemperatureMin:     0,
	PressureAvg:        950,
	DirectRadiationAvg: 350,
}

// evaluate applies the ordered rule set against one threshold boundary and
// returns the reasons that fired. Absent temperature extremes never fire.
func evaluate(s Statistics, t Thresholds, reasons [6]string) []string {
	fired := []string{}
	if s.PrecipitationSum >= t.PrecipitationSum {
		fired = append(fired, reasons[0])
	}
	if s.WindSpeedMax >= t.WindSpeedMax {
		fired = append(fired, reasons[1])
	}
	if s.TemperatureMax != nil && *s.TemperatureMax >= t.TemperatureMax {
		fired = append(fired, reasons[2])
	}
	if s.TemperatureMin != nil && *s.TemperatureMin < t.TemperatureMin {
		fired = append(fired, reasons[3])
	}
	if s.PressureAvg <= t.PressureAvg {
		fired = append(fired, reasons[4])
	}
	if s.DirectRadiationAvg >= t.DirectRadiationAvg {
		fired = append(fired, reasons[5])
	}
	return fired
}

var dangerReasons = [6]string{
	ReasonHeavyPrecipitation,
	ReasonHighWindSpeed,
	ReasonHighTemperatureMax,
	ReasonLowTemperatureMin,
	ReasonLowPressure,
	ReasonHighRadiation,
}

var cautionReasons = [6]string{
	ReasonElevatedPrecipitation,
	ReasonElevatedWindSpeed,
	ReasonElevatedTemperature,
	ReasonNearFreezing,
	ReasonFallingPressure,
	ReasonElevatedRadiation,
}

// TwoTierPolicy is the canonical SAFE/DANGER policy: any fired rule means
// DANGER, otherwise SAFE.
type TwoTierPolicy struct {
	Thresholds Thresholds
}

// DefaultPolicy returns the two-tier policy with the canonical thresholds.
func DefaultPolicy() TwoTierPolicy {
	return TwoTierPolicy{Thresholds: DangerThresholds}
}

func (TwoTierPolicy) Name() string { return "two-tier" }

func (p TwoTierPolicy) Classify(s Statistics) (RiskLevel, []string) {
	fired := evaluate(s, p.Thresholds, dangerReasons)
	if len(fired) > 0 {
		return RiskDanger, fired
	}
	return RiskSafe, fired
}

// ThreeTierPolicy adds a CAUTION band between SAFE and DANGER. DANGER rules
// are evaluated first at the canonical thresholds; only when none fire are
// the looser caution boundaries consulted.
type ThreeTierPolicy struct {
	Danger  Thresholds
	Caution Thresholds
}

// NewThreeTierPolicy returns the three-tier policy with the documented
// boundaries.
func NewThreeTierPolicy() ThreeTierPolicy {
	return ThreeTierPolicy{Danger: DangerThresholds, Caution: CautionThresholds}
}

func (ThreeTierPolicy) Name() string { return "three-tier" }

func (p ThreeTierPolicy) Classify(s Statistics) (RiskLevel, []string) {
	if fired := evaluate(s, p.Danger, dangerReasons); len(fired) > 0 {
		return RiskDanger, fired
	}
	if fired := evaluate(s, p.Caution, cautionReasons); len(fired) > 0 {
		return RiskCaution, fired
	}
	return RiskSafe, []string{}
}

// PolicyByName resolves a configured policy name. Accepts "default",
// "two-tier" and "three-tier".
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "default", "two-tier":
		return DefaultPolicy(), nil
	case "three-tier":
		return NewThreeTierPolicy(), nil
	default:
		return nil, fmt.Errorf("unknown risk policy %q", name)
	}
}
