package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulstone/tierline/internal/engine"
)

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	return New(
		WithGenerator(&SequenceGenerator{Prefix: "order"}),
		WithClock(fixedClock(t)),
	)
}

func authorizedSummary() engine.Summary {
	lines := []engine.Line{
		{
			Code:          "OAK-90",
			Name:          "Oak plank 90",
			QuantityBoxes: 32,
			RatePerMeter:  decimal.NewFromFloat(10.17),
			LineValue:     decimal.NewFromFloat(29289.6),
			Pieces:        decimal.NewFromInt(1440),
			Packs:         192,
			Compliant:     true,
			Status:        engine.StatusVerified,
		},
	}
	return engine.Summary{
		Tier:        engine.TierFactoryBulk,
		TotalBoxes:  32,
		TotalPieces: decimal.NewFromInt(1440),
		TotalPacks:  192,
		TotalValue:  decimal.NewFromFloat(29289.6),
		Authorized:  true,
		Lines:       lines,
	}
}

func blockedSummary() engine.Summary {
	s := authorizedSummary()
	s.Lines[0].Compliant = false
	s.Lines[0].Status = engine.StatusInefficient
	s.Authorized = false
	s.FailureCount = 1
	return s
}

func TestAppend(t *testing.T) {
	l := testLedger(t)

	rec, err := l.Append(authorizedSummary())
	require.NoError(t, err)

	assert.Equal(t, "order-1", rec.ID)
	assert.Equal(t, fixedClock(t)().UnixMilli(), rec.CommittedAt)
	assert.Equal(t, engine.TierFactoryBulk, rec.Tier)
	assert.True(t, rec.TotalValue.Equal(decimal.NewFromFloat(29289.6)))
	require.Len(t, rec.Lines, 1)
	assert.Equal(t, 1, l.Len())

	rec2, err := l.Append(authorizedSummary())
	require.NoError(t, err)
	assert.Equal(t, "order-2", rec2.ID)
	assert.Equal(t, 2, l.Len())
}

func TestAppend_BlockedLeavesLedgerUntouched(t *testing.T) {
	l := testLedger(t)

	_, err := l.Append(blockedSummary())
	require.Error(t, err)
	assert.True(t, IsGateError(err))

	var ge *GateError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, 1, ge.FailureCount)
	require.Len(t, ge.Failures, 1)
	assert.Equal(t, "OAK-90", ge.Failures[0].Code)
	assert.Equal(t, engine.StatusInefficient, ge.Failures[0].Status)

	assert.Equal(t, 0, l.Len(), "a blocked commit must not append")
}

func TestAppend_EmptySummaryBlocked(t *testing.T) {
	l := testLedger(t)

	_, err := l.Append(engine.Summary{Tier: engine.TierFactoryBulk})
	require.Error(t, err)

	var ge *GateError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, 0, ge.FailureCount)
	assert.Empty(t, ge.Failures)
	assert.Contains(t, ge.Error(), "no lines")
}

func TestAppend_FreezesLines(t *testing.T) {
	l := testLedger(t)
	s := authorizedSummary()

	rec, err := l.Append(s)
	require.NoError(t, err)

	// Mutating the caller's summary after commit must not reach the record.
	s.Lines[0].QuantityBoxes = 999
	got := l.All()
	require.Len(t, got, 1)
	assert.Equal(t, int64(32), got[0].Lines[0].QuantityBoxes)
	assert.Equal(t, int64(32), rec.Lines[0].QuantityBoxes)
}

func TestAll_ReturnsCopy(t *testing.T) {
	l := testLedger(t)
	_, err := l.Append(authorizedSummary())
	require.NoError(t, err)

	records := l.All()
	records[0].ID = "tampered"

	assert.Equal(t, "order-1", l.All()[0].ID)
}

func TestFromRecords_CopiesInput(t *testing.T) {
	seed := []Record{{ID: "order-1", Tier: engine.TierStandardRetail, TotalValue: decimal.Zero}}
	l := FromRecords(seed)

	seed[0].ID = "tampered"
	assert.Equal(t, "order-1", l.All()[0].ID)
	assert.Equal(t, 1, l.Len())
}

func TestPurchasedCodes(t *testing.T) {
	l := testLedger(t)
	assert.Empty(t, l.PurchasedCodes())

	s := authorizedSummary()
	s.Lines = append(s.Lines, engine.Line{
		Code: "TRIM-25", QuantityBoxes: 45,
		RatePerMeter: decimal.NewFromInt(26), LineValue: decimal.NewFromInt(29250),
		Pieces: decimal.NewFromFloat(562.5), Packs: 450,
		Compliant: true, Status: engine.StatusVerified,
	})
	_, err := l.Append(s)
	require.NoError(t, err)
	_, err = l.Append(authorizedSummary())
	require.NoError(t, err)

	codes := l.PurchasedCodes()
	assert.ElementsMatch(t, []string{"OAK-90", "TRIM-25"}, codes, "codes are distinct across records")
}

func TestSequenceGenerator(t *testing.T) {
	g := &SequenceGenerator{Prefix: "tx"}
	assert.Equal(t, "tx-1", g.Generate())
	assert.Equal(t, "tx-2", g.Generate())
}

func TestUUIDv7Generator_Unique(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
