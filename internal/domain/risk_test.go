package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// calmStats returns statistics that trigger no rule under any policy.
func calmStats() Statistics {
	return Statistics{
		PrecipitationSum:            10,
		TemperatureMin:              ptr(5),
		TemperatureMax:              ptr(25),
		WindSpeedMax:                20,
		PrecipitationProbabilityAvg: 30,
		PressureAvg:                 1010,
		DirectRadiationAvg:          200,
	}
}

func TestTwoTierPolicy_Safe(t *testing.T) {
	tier, reasons := DefaultPolicy().Classify(calmStats())

	assert.Equal(t, RiskSafe, tier)
	assert.Empty(t, reasons)
	assert.NotNil(t, reasons)
}

func TestTwoTierPolicy_SingleRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Statistics)
		reason string
	}{
		{"heavy precipitation", func(s *Statistics) { s.PrecipitationSum = 80 }, ReasonHeavyPrecipitation},
		{"high wind", func(s *Statistics) { s.WindSpeedMax = 72 }, ReasonHighWindSpeed},
		{"high max temperature", func(s *Statistics) { s.TemperatureMax = ptr(41) }, ReasonHighTemperatureMax},
		{"low min temperature", func(s *Statistics) { s.TemperatureMin = ptr(-6) }, ReasonLowTemperatureMin},
		{"low pressure", func(s *Statistics) { s.PressureAvg = 890 }, ReasonLowPressure},
		{"high radiation", func(s *Statistics) { s.DirectRadiationAvg = 600 }, ReasonHighRadiation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := calmStats()
			tt.mutate(&s)

			tier, reasons := DefaultPolicy().Classify(s)

			assert.Equal(t, RiskDanger, tier)
			assert.Equal(t, []string{tt.reason}, reasons)
		})
	}
}

func TestTwoTierPolicy_Boundaries(t *testing.T) {
	t.Run("precipitation exactly 50 triggers", func(t *testing.T) {
		s := calmStats()
		s.PrecipitationSum = 50

		tier, reasons := DefaultPolicy().Classify(s)

		assert.Equal(t, RiskDanger, tier)
		assert.Contains(t, reasons, ReasonHeavyPrecipitation)
	})

	t.Run("precipitation just below 50 does not", func(t *testing.T) {
		s := calmStats()
		s.PrecipitationSum = 49.999

		tier, _ := DefaultPolicy().Classify(s)

		assert.Equal(t, RiskSafe, tier)
	})

	t.Run("minimum temperature exactly -5 does not trigger", func(t *testing.T) {
		s := calmStats()
		s.TemperatureMin = ptr(-5)

		tier, _ := DefaultPolicy().Classify(s)

		assert.Equal(t, RiskSafe, tier)
	})

	t.Run("pressure exactly 900 triggers", func(t *testing.T) {
		s := calmStats()
		s.PressureAvg = 900

		tier, reasons := DefaultPolicy().Classify(s)

		assert.Equal(t, RiskDanger, tier)
		assert.Equal(t, []string{ReasonLowPressure}, reasons)
	})
}

func TestTwoTierPolicy_ReasonsInDeclarationOrder(t *testing.T) {
	s := Statistics{
		PrecipitationSum:   120,
		TemperatureMin:     ptr(-12),
		TemperatureMax:     ptr(44),
		WindSpeedMax:       95,
		PressureAvg:        880,
		DirectRadiationAvg: 700,
	}

	tier, reasons := DefaultPolicy().Classify(s)

	assert.Equal(t, RiskDanger, tier)
	assert.Equal(t, []string{
		ReasonHeavyPrecipitation,
		ReasonHighWindSpeed,
		ReasonHighTemperatureMax,
		ReasonLowTemperatureMin,
		ReasonLowPressure,
		ReasonHighRadiation,
	}, reasons)
}

func TestTwoTierPolicy_MissingTemperaturesShortCircuit(t *testing.T) {
	s := calmStats()
	s.TemperatureMin = nil
	s.TemperatureMax = nil

	tier, reasons := DefaultPolicy().Classify(s)

	assert.Equal(t, RiskSafe, tier)
	assert.Empty(t, reasons)
}

func TestTwoTierPolicy_Deterministic(t *testing.T) {
	s := calmStats()
	s.WindSpeedMax = 55
	s.DirectRadiationAvg = 510

	firstTier, firstReasons := DefaultPolicy().Classify(s)
	for i := 0; i < 10; i++ {
		tier, reasons := DefaultPolicy().Classify(s)
		require.Equal(t, firstTier, tier)
		require.Equal(t, firstReasons, reasons)
	}
}

func TestThreeTierPolicy(t *testing.T) {
	policy := NewThreeTierPolicy()

	t.Run("calm stays safe", func(t *testing.T) {
		tier, reasons := policy.Classify(calmStats())

		assert.Equal(t, RiskSafe, tier)
		assert.Empty(t, reasons)
	})

	t.Run("caution band", func(t *testing.T) {
		s := calmStats()
		s.PrecipitationSum = 35
		s.WindSpeedMax = 40

		tier, reasons := policy.Classify(s)

		assert.Equal(t, RiskCaution, tier)
		assert.Equal(t, []string{ReasonElevatedPrecipitation, ReasonElevatedWindSpeed}, reasons)
	})

	t.Run("danger outranks caution", func(t *testing.T) {
		s := calmStats()
		s.PrecipitationSum = 60
		s.WindSpeedMax = 40 // caution-band wind must not appear in the reasons

		tier, reasons := policy.Classify(s)

		assert.Equal(t, RiskDanger, tier)
		assert.Equal(t, []string{ReasonHeavyPrecipitation}, reasons)
	})

	t.Run("near-freezing minimum", func(t *testing.T) {
		s := calmStats()
		s.TemperatureMin = ptr(-2)

		tier, reasons := policy.Classify(s)

		assert.Equal(t, RiskCaution, tier)
		assert.Equal(t, []string{ReasonNearFreezing}, reasons)
	})
}

func TestPolicyByName(t *testing.T) {
	for _, name := range []string{"", "default", "two-tier"} {
		p, err := PolicyByName(name)
		require.NoError(t, err)
		assert.Equal(t, "two-tier", p.Name())
	}

	p, err := PolicyByName("three-tier")
	require.NoError(t, err)
	assert.Equal(t, "three-tier", p.Name())

	_, err = PolicyByName("four-tier")
	assert.Error(t, err)
}
