package freight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packquote/internal/core/types"
)

func TestParseDimensions(t *testing.T) {
	d, err := ParseDimensions("30x20x10")
	require.NoError(t, err)
	assert.Equal(t, "30", d.LengthCm.String())
	assert.Equal(t, "20", d.WidthCm.String())
	assert.Equal(t, "10", d.HeightCm.String())

	d, err = ParseDimensions(" 30.5X20X9.5 ")
	require.NoError(t, err)
	assert.Equal(t, "30.5", d.LengthCm.String())
	assert.Equal(t, "9.5", d.HeightCm.String())

	for _, bad := range []string{"", "30x20", "30x20x10x5", "axbxc", "30x-1x10", "30x0x10"} {
		_, err := ParseDimensions(bad)
		assert.Error(t, err, bad)
	}
}

func TestBoxesFor(t *testing.T) {
	assert.Equal(t, 1, BoxesFor(1, 10))
	assert.Equal(t, 1, BoxesFor(10, 10))
	assert.Equal(t, 2, BoxesFor(11, 10))
	assert.Equal(t, 10, BoxesFor(100, 10))
	assert.Equal(t, 7, BoxesFor(7, 0))
}

func TestRecommendPicksCheapest(t *testing.T) {
	options := []Option{
		{CarrierName: "SlowFreight", Price: types.MustMoney("18.00"), LeadTimeDays: 12},
		{CarrierName: "QuickShip", Price: types.MustMoney("15.00"), LeadTimeDays: 3},
	}

	rec := Recommend(options, types.MustMoney("500.00"))
	require.NotNil(t, rec.Best)
	assert.Equal(t, "QuickShip", rec.Best.CarrierName)
	assert.False(t, rec.ManualNegotiation)
}

func TestRecommendManualWhenFreightTooExpensive(t *testing.T) {
	options := []Option{
		{CarrierName: "QuickShip", Price: types.MustMoney("55.00"), LeadTimeDays: 3},
	}

	// 55.00 > 10% of 500.00
	rec := Recommend(options, types.MustMoney("500.00"))
	require.NotNil(t, rec.Best)
	assert.True(t, rec.ManualNegotiation)

	// Exactly at the threshold stays automatic.
	rec = Recommend([]Option{
		{CarrierName: "QuickShip", Price: types.MustMoney("50.00")},
	}, types.MustMoney("500.00"))
	assert.False(t, rec.ManualNegotiation)
}

func TestRecommendNoOptions(t *testing.T) {
	rec := Recommend(nil, types.MustMoney("500.00"))
	assert.Nil(t, rec.Best)
	assert.True(t, rec.ManualNegotiation)
}
