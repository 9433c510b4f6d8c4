// Package auth hashes passwords and issues signed access tokens.
package auth

import (
	"fmt"
	"strings"
	"unicode"

	"nutellove/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// MaxSimilarity is the similarity ratio at or above which a password is
// considered too close to one of the user's attributes.
const MaxSimilarity = 0.7

// commonPasswords holds frequently leaked passwords, lower-cased.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "passw0rd": {},
	"iloveyou": {}, "sunshine": {}, "princess": {}, "football": {},
	"baseball": {}, "welcome1": {}, "superman": {}, "trustno1": {},
	"qwertyuiop": {}, "qwerty123": {}, "azertyuiop": {}, "azerty123": {},
	"motdepasse": {}, "doudou123": {}, "chocolat": {}, "soleil123": {},
	"abc12345": {}, "abcdefgh": {}, "letmein1": {}, "starwars": {},
	"whatever": {}, "charlie1": {}, "computer": {}, "michelle": {},
	"jennifer": {}, "1q2w3e4r": {}, "1qaz2wsx": {}, "zaq12wsx": {},
	"aaaaaaaa": {}, "11111111": {}, "12345678": {}, "123456789": {},
	"nutellove": {},
}

// ValidatePassword applies the password rules for username. Further
// attributes, such as the email address, are checked for similarity too.
func ValidatePassword(username, password, confirmation string, attributes ...string) error {
	if password != confirmation {
		return model.ErrPasswordMismatch
	}

	if len([]rune(password)) < MinPasswordLength {
		return model.ErrPasswordTooShort
	}

	if strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		return model.ErrPasswordNumeric
	}

	if tooSimilar(password, username) {
		return model.ErrPasswordUsername
	}

	for _, attr := range attributes {
		if tooSimilar(password, attr) {
			return model.ErrPasswordAttribute
		}
	}

	if _, common := commonPasswords[strings.ToLower(password)]; common {
		return model.ErrPasswordCommon
	}

	// bcrypt rejects inputs longer than 72 bytes
	if len(password) > 72 {
		return model.ErrPasswordTooLong
	}

	return nil
}

// tooSimilar compares password with value and with each word of value.
func tooSimilar(password, value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return false
	}

	password = strings.ToLower(password)
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	for _, part := range append(parts, value) {
		if similarity(password, part) >= MaxSimilarity {
			return true
		}
	}
	return false
}

// similarity returns 2*M/T, where M counts the characters of the longest
// common blocks found recursively on both sides of each match and T is the
// combined length.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ra, rb)) / float64(total)
}

func matchingRunes(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	// longest common substring
	bestLen, bestA, bestB := 0, 0, 0
	prev := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		cur := make([]int, len(b)+1)
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > bestLen {
					bestLen, bestA, bestB = cur[j], i-cur[j], j-cur[j]
				}
			}
		}
		prev = cur
	}
	if bestLen == 0 {
		return 0
	}

	return bestLen +
		matchingRunes(a[:bestA], b[:bestB]) +
		matchingRunes(a[bestA+bestLen:], b[bestB+bestLen:])
}
