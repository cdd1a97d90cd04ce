package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// jobIDAlphabet avoids characters that need URL escaping; job IDs end
// up in paths and object keys.
const jobIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const jobIDLength = 16

// NewJobID returns a new public job identifier.
func NewJobID() (string, error) {
	return gonanoid.Generate(jobIDAlphabet, jobIDLength)
}
