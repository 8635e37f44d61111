package utils

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ExistsFunc reports whether an enrollment ID is already taken.
type ExistsFunc func(enrollmentID string) (bool, error)

const maxGenerateAttempts = 1000

// GenerateEnrollmentID produces an identifier in the form ENRL-YYYYMMDD-RRR,
// where RRR is a zero-padded random integer below 1000. The random suffix is
// re-rolled while a record with the candidate ID exists, so the format stays
// what enrollees see on their confirmation while collisions cannot create a
// duplicate record.
func GenerateEnrollmentID(now time.Time, exists ExistsFunc) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	datePart := now.Format("20060102")

	for i := 0; i < maxGenerateAttempts; i++ {
		id := fmt.Sprintf("ENRL-%s-%03d", datePart, seededRand.Intn(1000))

		taken, err := exists(id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}

	return "", errors.New("no free enrollment ID left for today")
}
