package service

import (
	"math/rand/v2"

	"github.com/bcnelson/squares/internal/domain"
)

// Shuffler produces an ordering of the digits 0-9.
type Shuffler func() domain.Digits

// Shuffle returns the digits 0-9 in uniformly random order (Fisher-Yates).
func Shuffle() domain.Digits {
	d := make(domain.Digits, domain.GridSize)
	for i := range d {
		d[i] = i
	}
	for i := len(d) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		d[i], d[j] = d[j], d[i]
	}
	return d
}
