// Package domain models municipal weather forecasts and their risk assessment.
//
// # Data Source
//
// Forecasts come from the Open-Meteo forecast API
// (https://api.open-meteo.com/v1/forecast), requested per municipality with
// hourly fields temperature_2m, precipitation, windspeed_10m,
// precipitation_probability, pressure_msl, direct_radiation and daily fields
// temperature_2m_max, temperature_2m_min, precipitation_sum. Every series is
// an ordered array whose entries may be null when the model has no value for
// a tick; series within a bundle are expected to share one length, but
// payloads with ragged lengths are walked only to the shortest series.
//
// # Reduction Conventions
//
// Temperature extremes seed at ±Inf and resolve to absent (nil) when no
// hourly or daily sample was ever present. Daily series only augment the
// hourly figures: a daily minimum can lower temperature_min, a daily maximum
// can raise temperature_max, and the daily precipitation sum adds on top of
// the hourly accumulation. Averages divide by the length of the source
// series, not by the count of non-null entries, and stay at zero when the
// series is empty.
//
// # Risk Classification
//
// The default policy is two-tier. Rules are evaluated in a fixed order and
// every rule that fires appends its reason; any fired rule means DANGER:
//
//	precipitation_sum     >= 50 mm     "heavy precipitation"
//	wind_speed_max        >= 50 km/h   "high wind speed"
//	temperature_max       >= 40 °C     "high maximum temperature"
//	temperature_min       <  -5 °C     "low minimum temperature"
//	pressure_avg          <= 900 hPa   "low atmospheric pressure"
//	direct_radiation_avg  >= 500 W/m²  "high direct radiation"
//
// Absent temperature extremes never fire their rules. A three-tier variant
// with a CAUTION band at looser thresholds is available as an alternate
// policy; see [ThreeTierPolicy].
package domain
