package session

import "math/rand"

// game codes avoid lookalike characters so they survive being read
// out loud over voice chat
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const CodeLength = 4

// GenerateGameCode returns a short session code for hosting a room.
// Codes are case-sensitive opaque strings to the relay; this format
// is only a client-side convention.
func GenerateGameCode(length int) string {
	if length <= 0 {
		length = CodeLength
	}
	code := make([]byte, length)
	for i := range code {
		code[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(code)
}
