package utils

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered identifiers for batch codes and batch
// sequence ids.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// New returns a version 7 UUID, falling back to a random one when the clock
// source fails.
func (g *UUIDGenerator) New() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}
