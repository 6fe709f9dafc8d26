package job

import (
	"testing"

	"pd-bot/util/common"

	"github.com/stretchr/testify/assert"
)

func TestRunWithRetryStopsOnSuccess(t *testing.T) {
	attempts := 0
	runWithRetry("test", 0, func() error {
		attempts++
		if attempts < 3 {
			return common.NewError("not yet")
		}
		return nil
	})
	assert.Equal(t, 3, attempts)
}

func TestRunWithRetrySingleAttemptWhenHealthy(t *testing.T) {
	attempts := 0
	runWithRetry("test", 0, func() error {
		attempts++
		return nil
	})
	assert.Equal(t, 1, attempts)
}
