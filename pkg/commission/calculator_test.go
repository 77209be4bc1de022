package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/upline"
)

func TestCalculate(t *testing.T) {
	rates := DefaultRateTable()

	t.Run("Pays Every Active Sponsor In The Chain", func(t *testing.T) {
		chain := []upline.Sponsor{
			{Level: 1, SponsorCode: "S1", Status: models.MemberActive},
			{Level: 2, SponsorCode: "S2", Status: models.MemberActive},
			{Level: 3, SponsorCode: "S3", Status: models.MemberActive},
		}

		intents := Calculate(chain, rates)

		assert.Len(t, intents, 3)
		assert.Equal(t, Intent{Level: 1, SponsorCode: "S1", Amount: 100, Label: "1st Level Benefits"}, intents[0])
		assert.Equal(t, Intent{Level: 2, SponsorCode: "S2", Amount: 25, Label: "2nd Level Benefits"}, intents[1])
		assert.Equal(t, Intent{Level: 3, SponsorCode: "S3", Amount: 25, Label: "3rd Level Benefits"}, intents[2])
	})

	t.Run("Forfeits Inactive Sponsors Without Shifting Levels", func(t *testing.T) {
		chain := []upline.Sponsor{
			{Level: 1, SponsorCode: "S1", Status: models.MemberPending},
			{Level: 2, SponsorCode: "S2", Status: models.MemberActive},
			{Level: 3, SponsorCode: "S3", Status: models.MemberRejected},
			{Level: 4, SponsorCode: "S4", Status: models.MemberActive},
		}

		intents := Calculate(chain, rates)

		assert.Len(t, intents, 2)
		// S2 keeps level 2; the skipped level-1 sponsor does not promote anyone.
		assert.Equal(t, 2, intents[0].Level)
		assert.Equal(t, "S2", intents[0].SponsorCode)
		assert.Equal(t, 4, intents[1].Level)
		assert.Equal(t, "S4", intents[1].SponsorCode)
	})

	t.Run("Empty Chain", func(t *testing.T) {
		assert.Empty(t, Calculate(nil, rates))
	})

	t.Run("Level Without A Rate Pays Nothing", func(t *testing.T) {
		chain := []upline.Sponsor{
			{Level: 1, SponsorCode: "S1", Status: models.MemberActive},
		}

		intents := Calculate(chain, RateTable{2: 25})

		assert.Empty(t, intents)
	})
}

func TestDefaultRateTable(t *testing.T) {
	rates := DefaultRateTable()

	assert.Equal(t, 100.0, rates[1])
	for level := 2; level <= 10; level++ {
		assert.Equal(t, 25.0, rates[level])
	}
	assert.Zero(t, rates[11])
}

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		10: "10th", 11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd",
	}
	for n, want := range cases {
		assert.Equal(t, want, Ordinal(n))
	}
}

func TestRateTableFromJSON(t *testing.T) {
	t.Run("Parses A Deployment Override", func(t *testing.T) {
		rates, err := RateTableFromJSON([]byte(`{"1": 150, "2": 50}`))

		assert.NoError(t, err)
		assert.Equal(t, 150.0, rates[1])
		assert.Equal(t, 50.0, rates[2])
	})

	t.Run("Rejects Level Zero", func(t *testing.T) {
		_, err := RateTableFromJSON([]byte(`{"0": 100}`))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "levels start at 1")
	})

	t.Run("Rejects Negative Amounts", func(t *testing.T) {
		_, err := RateTableFromJSON([]byte(`{"1": -5}`))

		assert.Error(t, err)
	})

	t.Run("Rejects An Empty Table", func(t *testing.T) {
		_, err := RateTableFromJSON([]byte(`{}`))

		assert.Error(t, err)
	})

	t.Run("Rejects Malformed JSON", func(t *testing.T) {
		_, err := RateTableFromJSON([]byte(`not-json`))

		assert.Error(t, err)
	})
}
