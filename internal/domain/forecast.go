package domain

import "time"

// Location is one municipality from the reference catalog.
type Location struct {
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// HourlySeries bundles the hourly forecast arrays. Entries are nullable;
// a nil entry means the model produced no value for that tick.
type HourlySeries struct {
	Temperature              []*float64 `json:"temperature_2m"`
	Precipitation            []*float64 `json:"precipitation"`
	WindSpeed                []*float64 `json:"windspeed_10m"`
	PrecipitationProbability []*float64 `json:"precipitation_probability"`
	Pressure                 []*float64 `json:"pressure_msl"`
	DirectRadiation          []*float64 `json:"direct_radiation"`
}

// DailySeries bundles the daily forecast arrays, one entry per day.
type DailySeries struct {
	TemperatureMax   []*float64 `json:"temperature_2m_max"`
	TemperatureMin   []*float64 `json:"temperature_2m_min"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
}

// RawForecast is the unprocessed provider payload for one location. It is
// produced once per city by the forecast client and consumed exactly once
// by the reducer.
type RawForecast struct {
	Hourly HourlySeries `json:"hourly"`
	Daily  DailySeries  `json:"daily"`
}

// Statistics is the fixed-shape reduction of one city's raw forecast.
// TemperatureMin and TemperatureMax are nil when no sample was ever present.
type Statistics struct {
	PrecipitationSum            float64   `json:"precipitation_sum"`
	TemperatureMin              *float64  `json:"temperature_min"`
	TemperatureMax              *float64  `json:"temperature_max"`
	WindSpeedMax                float64   `json:"wind_speed_max"`
	PrecipitationProbabilityAvg float64   `json:"precipitation_probability_avg"`
	PressureAvg                 float64   `json:"pressure_avg"`
	DirectRadiationAvg          float64   `json:"direct_radiation_avg"`
	RiskLevel                   RiskLevel `json:"risk_level,omitempty"`
	Reasons                     []string  `json:"reasons"`
}

// CityResult joins a location with its statistics. Stats is nil when the
// fetch for that city failed; such entries carry no tier at all.
type CityResult struct {
	Location
	Stats      *Statistics `json:"stats"`
	AssessedAt time.Time   `json:"assessed_at"`
}
