package subscriptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEntitling(t *testing.T) {
	assert.True(t, IsEntitling(StatusActive))
	assert.True(t, IsEntitling(StatusCancelAtPeriodEnd))

	assert.False(t, IsEntitling(StatusCancelled))
	assert.False(t, IsEntitling(StatusPaused))
	assert.False(t, IsEntitling(StatusPastDue))
	assert.False(t, IsEntitling(""))
}

func TestValidPlan(t *testing.T) {
	assert.True(t, ValidPlan(PlanBasic))
	assert.True(t, ValidPlan(PlanPro))
	assert.True(t, ValidPlan(PlanPremium))

	assert.False(t, ValidPlan("enterprise"))
	assert.False(t, ValidPlan(""))
}
