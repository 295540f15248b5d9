package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGameLocks(t *testing.T) {
	t.Run("Same game waits for the holder", func(t *testing.T) {
		// Given: a held lock
		locks := newGameLocks()
		unlock := locks.Lock("game1")

		// When: a second caller asks for the same game
		acquired := make(chan struct{})
		go func() {
			locks.Lock("game1")()
			close(acquired)
		}()

		// Then: it only gets through after the first unlock
		select {
		case <-acquired:
			t.Fatal("lock acquired while held")
		case <-time.After(50 * time.Millisecond):
		}

		unlock()

		select {
		case <-acquired:
		case <-time.After(time.Second):
			t.Fatal("lock not acquired after unlock")
		}

		assert.Zero(t, locks.len())
	})

	t.Run("Different games do not block each other", func(t *testing.T) {
		locks := newGameLocks()
		unlockFirst := locks.Lock("game1")
		unlockSecond := locks.Lock("game2")

		assert.Equal(t, 2, locks.len())

		unlockFirst()
		unlockSecond()

		assert.Zero(t, locks.len())
	})
}
