package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestRetryOnDuplicateSucceedsAfterRace(t *testing.T) {
	assert := assert.New(t)

	calls := 0
	err := retryOnDuplicate(maxVersionAttempts, func() error {
		calls++
		if calls < 3 {
			return gorm.ErrDuplicatedKey
		}
		return nil
	})

	assert.NoError(err)
	assert.Equal(3, calls)
}

func TestRetryOnDuplicateDoesNotRetryOtherErrors(t *testing.T) {
	assert := assert.New(t)

	boom := errors.New("connection refused")
	calls := 0
	err := retryOnDuplicate(maxVersionAttempts, func() error {
		calls++
		return boom
	})

	assert.ErrorIs(err, boom)
	assert.Equal(1, calls)
}

func TestRetryOnDuplicateGivesUpEventually(t *testing.T) {
	assert := assert.New(t)

	calls := 0
	err := retryOnDuplicate(maxVersionAttempts, func() error {
		calls++
		return gorm.ErrDuplicatedKey
	})

	assert.ErrorIs(err, gorm.ErrDuplicatedKey)
	assert.Equal(maxVersionAttempts, calls)
}
