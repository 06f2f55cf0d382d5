package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceRollsPeriod(t *testing.T) {
	prev := baseRecord()
	today := time.Date(2023, time.February, 2, 0, 0, 0, 0, time.UTC)

	next, err := Advance(prev, today)
	require.NoError(t, err)

	assert.Equal(t, "01.02.2023", next.DateFrom)
	assert.Equal(t, "28.02.2023", next.DateTo)
	assert.Equal(t, "02.02.2023", next.IssueDate)
	assert.Equal(t, "AB2023008", next.PaymentReference)
}

func TestAdvanceYearRollover(t *testing.T) {
	prev := baseRecord()
	prev.DateFrom = "01.12.2023"
	prev.DateTo = "31.12.2023"
	today := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	next, err := Advance(prev, today)
	require.NoError(t, err)

	assert.Equal(t, "01.01.2024", next.DateFrom)
	assert.Equal(t, "31.01.2024", next.DateTo)
	assert.Equal(t, "AB2024008", next.PaymentReference)
}

func TestAdvanceIntoLeapFebruary(t *testing.T) {
	prev := baseRecord()
	prev.DateTo = "31.01.2024"
	prev.PaymentReference = "007"
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	next, err := Advance(prev, today)
	require.NoError(t, err)

	assert.Equal(t, "01.02.2024", next.DateFrom)
	assert.Equal(t, "29.02.2024", next.DateTo)
	assert.Equal(t, "008", next.PaymentReference)
}

func TestAdvanceStripsDerivedFields(t *testing.T) {
	prev := baseRecord()
	prev.Oncall = baseOncall()
	expanded, err := Expand(prev, testParties())
	require.NoError(t, err)

	today := time.Date(2023, time.February, 2, 0, 0, 0, 0, time.UTC)
	next, err := Advance(expanded, today)
	require.NoError(t, err)

	assert.Nil(t, next.DeliveryDate)
	assert.Nil(t, next.DueDate)
	assert.Nil(t, next.Total)
	assert.NotContains(t, next.Extra, "supplier_name")
	assert.NotContains(t, next.Extra, "client_name")
	assert.Equal(t, "keep me", next.Extra["note"])

	// The synthesized on-call line is gone; explicit lines stay, totals
	// cleared.
	require.Len(t, next.Deliveries, 2)
	for _, d := range next.Deliveries {
		assert.Nil(t, d.Total)
	}

	sheet := next.Oncall[0]
	assert.Nil(t, sheet.TotalHours)
	assert.Nil(t, sheet.TotalPrice)
	for _, item := range sheet.Items {
		assert.Nil(t, item.Hours)
		assert.Nil(t, item.Price)
	}
}

func TestAdvanceSkeletonReExpands(t *testing.T) {
	prev := baseRecord()
	prev.Oncall = baseOncall()
	expanded, err := Expand(prev, testParties())
	require.NoError(t, err)

	today := time.Date(2023, time.February, 2, 0, 0, 0, 0, time.UTC)
	next, err := Advance(expanded, today)
	require.NoError(t, err)

	reExpanded, err := Expand(next, testParties())
	require.NoError(t, err)
	// Same explicit deliveries and on-call setup, so the same total: no
	// double counting from feeding an expanded record back in.
	assert.True(t, reExpanded.Total.Equal(*expanded.Total))
}

func TestAdvanceStaleWarningDoesNotBlock(t *testing.T) {
	prev := baseRecord()
	// Way past the generated period's end.
	today := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)

	next, err := Advance(prev, today)
	require.NoError(t, err)
	assert.Equal(t, "28.02.2023", next.DateTo)
	assert.Equal(t, "15.06.2023", next.IssueDate)
}

func TestAdvanceBadDate(t *testing.T) {
	prev := baseRecord()
	prev.DateTo = "2023-01-31"
	_, err := Advance(prev, time.Now())
	assert.Error(t, err)
}
