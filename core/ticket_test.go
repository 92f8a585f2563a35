package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClaim_Expired(t *testing.T) {
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	claim := Claim{ID: "c", EventID: "e", EndDate: end}

	assert.False(t, claim.Expired(end.Add(-time.Hour)))
	// The boundary itself is inclusive.
	assert.False(t, claim.Expired(end))
	assert.True(t, claim.Expired(end.Add(time.Nanosecond)))
	assert.True(t, claim.Expired(end.AddDate(0, 0, 1)))
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "0xabc1", NormalizeAddress("0xAbC1"))
	assert.Equal(t, "0xabc1", NormalizeAddress("  0xABC1  "))
	assert.Equal(t, "", NormalizeAddress(""))
}

func TestDefaultName(t *testing.T) {
	assert.Equal(t, "NONAME0xabc", DefaultName("0xAbCdEf00"))
	assert.Equal(t, "NONAME0x1", DefaultName("0x1"))
}
