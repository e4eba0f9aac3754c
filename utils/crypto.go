package utils

import (
    "crypto/rand"
    "crypto/sha256"
    "encoding/hex"
    "math/big"
)

// HashPassword hashes with SHA-256, matching the legacy account records
// migrated from the previous backend.
func HashPassword(password string) string {
    sum := sha256.Sum256([]byte(password))
    return hex.EncodeToString(sum[:])
}

func GenerateRandomString(length int) string {
    const charset = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
    result := make([]byte, length)
    for i := range result {
        n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
        result[i] = charset[n.Int64()]
    }
    return string(result)
}
