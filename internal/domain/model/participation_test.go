package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamj-ops/everyday-lending/internal/domain/model"
	"github.com/adamj-ops/everyday-lending/pkg/testutil"
)

func TestParticipationShare_Validate(t *testing.T) {
	valid := model.ParticipationShare{
		LenderID:                testutil.TestLenderID1.String(),
		ParticipationPercentage: decimal.NewFromInt(60),
	}
	require.NoError(t, valid.Validate())

	missing := valid
	missing.LenderID = ""
	testutil.AssertErrorContains(t, missing.Validate(), "lender ID")

	negative := valid
	negative.ParticipationPercentage = decimal.NewFromInt(-5)
	testutil.AssertErrorContains(t, negative.Validate(), "between 0 and 100")

	over := valid
	over.ParticipationPercentage = decimal.NewFromInt(101)
	testutil.AssertErrorContains(t, over.Validate(), "between 0 and 100")
}

func TestProrateShares_TwoLenders(t *testing.T) {
	shares := model.ProrateShares(decimal.NewFromInt(1000), []model.ParticipationShare{
		{LenderID: testutil.TestLenderID1.String(), ParticipationPercentage: decimal.NewFromInt(60)},
		{LenderID: testutil.TestLenderID2.String(), ParticipationPercentage: decimal.NewFromInt(40)},
	})

	require.Len(t, shares, 2)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(600), shares[0])
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(400), shares[1])
}

func TestProrateShares_RoundingResidual(t *testing.T) {
	// A single cent three ways rounds every share to zero; the whole cent
	// goes to the largest participation so nothing is lost.
	shares := model.ProrateShares(decimal.RequireFromString("0.01"), []model.ParticipationShare{
		{LenderID: "a", ParticipationPercentage: decimal.RequireFromString("33.34")},
		{LenderID: "b", ParticipationPercentage: decimal.RequireFromString("33.33")},
		{LenderID: "c", ParticipationPercentage: decimal.RequireFromString("33.33")},
	})

	require.Len(t, shares, 3)
	testutil.AssertDecimalEqual(t, decimal.RequireFromString("0.01"), shares[0])
	testutil.AssertDecimalEqual(t, decimal.Zero, shares[1])
	testutil.AssertDecimalEqual(t, decimal.Zero, shares[2])
}

func TestProrateShares_ManyTinyShares(t *testing.T) {
	// 50 equal 2% participations of a 25-cent payment: every exact share is
	// half a cent. Flooring keeps each share at zero and the 25 whole cents
	// are handed out one per share, so no share ever goes negative.
	participations := make([]model.ParticipationShare, 50)
	for i := range participations {
		participations[i] = model.ParticipationShare{
			LenderID:                testutil.TestLenderID1.String(),
			ParticipationPercentage: decimal.NewFromInt(2),
		}
	}

	shares := model.ProrateShares(decimal.RequireFromString("0.25"), participations)
	require.Len(t, shares, 50)

	cent := decimal.RequireFromString("0.01")
	total := decimal.Zero
	for i, s := range shares {
		assert.False(t, s.IsNegative(), "share %d is negative: %s", i, s)
		assert.True(t, s.IsZero() || s.Equal(cent), "share %d is not a whole cent: %s", i, s)
		total = total.Add(s)
	}
	testutil.AssertDecimalEqual(t, decimal.RequireFromString("0.25"), total)
}

func TestProrateShares_AlwaysConserves(t *testing.T) {
	amounts := []string{"0.01", "1", "99.99", "1000", "1234.56", "1000000"}
	splits := [][]string{
		{"100"},
		{"50", "50"},
		{"60", "40"},
		{"33.33", "33.33", "33.34"},
		{"70", "20", "10"},
		{"12.5", "12.5", "25", "50"},
	}

	for _, amount := range amounts {
		for _, split := range splits {
			participations := make([]model.ParticipationShare, len(split))
			for i, pct := range split {
				participations[i] = model.ParticipationShare{
					LenderID:                testutil.TestLenderID1.String(),
					ParticipationPercentage: decimal.RequireFromString(pct),
				}
			}

			shares := model.ProrateShares(decimal.RequireFromString(amount), participations)
			require.Len(t, shares, len(split))

			total := decimal.Zero
			for _, s := range shares {
				assert.False(t, s.IsNegative(), "negative share for amount=%s split=%v", amount, split)
				total = total.Add(s)
			}
			testutil.AssertDecimalEqual(t, decimal.RequireFromString(amount), total)
		}
	}
}

func TestProrateShares_Empty(t *testing.T) {
	shares := model.ProrateShares(decimal.NewFromInt(100), nil)
	assert.Empty(t, shares)
}
