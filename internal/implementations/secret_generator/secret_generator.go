package secretgenerator

import (
	"crypto/rand"
	"encoding/hex"
	"gatekeeper/internal/core/domain/user"
)

const secretByteCount = 32

// Generator produces reset secrets from the OS entropy source.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateResetSecret() user.RawResetSecret {
	b := make([]byte, secretByteCount)
	if _, err := rand.Read(b); err != nil {
		// The OS entropy source is unavailable, nothing sensible to do.
		panic(err)
	}
	return user.RawResetSecret(hex.EncodeToString(b))
}
