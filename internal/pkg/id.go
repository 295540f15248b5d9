package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	gameIDLength  = 6
	gameIDCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GenerateGameID returns a short code that is easy to type in a terminal.
func GenerateGameID() (string, error) {
	id := make([]byte, gameIDLength)
	limit := big.NewInt(int64(len(gameIDCharset)))

	for i := range id {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to read random number: %w", err)
		}

		id[i] = gameIDCharset[n.Int64()]
	}

	return string(id), nil
}
