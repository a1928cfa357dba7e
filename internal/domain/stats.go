package domain

import "math"

// Reducer folds raw forecasts into statistics and classifies the result
// under its policy. The zero value is not usable; construct with NewReducer.
type Reducer struct {
	policy Policy
}

// NewReducer creates a Reducer that classifies with the given policy.
func NewReducer(policy Policy) Reducer {
	return Reducer{policy: policy}
}

// PolicyName reports the classification policy in use.
func (r Reducer) PolicyName() string { return r.policy.Name() }

// Reduce folds one city's hourly and daily series into Statistics and stores
// the policy's (tier, reasons) in the record. Pure computation, no I/O.
func (r Reducer) Reduce(raw RawForecast) Statistics {
	s := reduceSeries(raw)
	s.RiskLevel, s.Reasons = r.policy.Classify(s)
	return s
}

// reduceSeries performs the statistical fold without classification.
func reduceSeries(raw RawForecast) Statistics {
	var s Statistics
	s.Reasons = []string{}

	tempMin := math.Inf(1)
	tempMax := math.Inf(-1)
	var probSum, pressureSum, radiationSum float64

	h := raw.Hourly
	for i := 0; i < shortestHourly(h); i++ {
		if v := h.Temperature[i]; v != nil {
			tempMin = math.Min(tempMin, *v)
			tempMax = math.Max(tempMax, *v)
		}
		if v := h.Precipitation[i]; v != nil {
			s.PrecipitationSum += *v
		}
		if v := h.WindSpeed[i]; v != nil {
			s.WindSpeedMax = math.Max(s.WindSpeedMax, *v)
		}
		if v := h.PrecipitationProbability[i]; v != nil {
			probSum += *v
		}
		if v := h.Pressure[i]; v != nil {
			pressureSum += *v
		}
		if v := h.DirectRadiation[i]; v != nil {
			radiationSum += *v
		}
	}

	// Daily data augments the hourly figures, never replaces them.
	for _, v := range raw.Daily.TemperatureMin {
		if v != nil {
			tempMin = math.Min(tempMin, *v)
		}
	}
	for _, v := range raw.Daily.TemperatureMax {
		if v != nil {
			tempMax = math.Max(tempMax, *v)
		}
	}
	for _, v := range raw.Daily.PrecipitationSum {
		if v != nil {
			s.PrecipitationSum += *v
		}
	}

	if !math.IsInf(tempMin, 1) {
		s.TemperatureMin = &tempMin
	}
	if !math.IsInf(tempMax, -1) {
		s.TemperatureMax = &tempMax
	}

	// Averages divide by the series' own length; an empty series leaves the
	// accumulator at its zero default.
	s.PrecipitationProbabilityAvg = mean(probSum, len(h.PrecipitationProbability))
	s.PressureAvg = mean(pressureSum, len(h.Pressure))
	s.DirectRadiationAvg = mean(radiationSum, len(h.DirectRadiation))

	return s
}

// shortestHourly returns the length of the shortest hourly series so that a
// ragged payload cannot index out of bounds.
func shortestHourly(h HourlySeries) int {
	n := len(h.Temperature)
	for _, l := range []int{
		len(h.Precipitation),
		len(h.WindSpeed),
		len(h.PrecipitationProbability),
		len(h.Pressure),
		len(h.DirectRadiation),
	} {
		if l < n {
			n = l
		}
	}
	return n
}

func mean(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
