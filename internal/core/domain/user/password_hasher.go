package user

// PasswordHasher hashes both account passwords and reset secrets.
// ValidatePassword must not leak timing information about the hash.
type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}
