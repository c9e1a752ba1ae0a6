package repository

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const projectIDPrefix = "clonex"

// newProjectID returns a short human-readable id such as "clonex-48213-0917".
// Collisions are possible and handled by the caller retrying on unique violation.
func newProjectID() (string, error) {
	hi, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	lo, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%05d-%04d", projectIDPrefix, 10000+hi.Int64(), lo.Int64()), nil
}
