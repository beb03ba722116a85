// internal/domain/auth/codec.go
package auth

import (
	"encoding/base64"
	"fmt"
	"strings"

	xerrors "github.com/tomraj007/txnportal/internal/pkg/errors"
)

// EncodeCredentials obfuscates raw credentials into the wire shape the
// login endpoint expects. Total function, no failure modes.
func EncodeCredentials(username, password string) EncodedCredentials {
	return EncodedCredentials{
		Username: base64.StdEncoding.EncodeToString([]byte(username)),
		Password: base64.StdEncoding.EncodeToString([]byte(password)),
	}
}

// DecodeCredentials reverses EncodeCredentials on the gateway side.
func DecodeCredentials(enc EncodedCredentials) (username, password string, err error) {
	u, err := base64.StdEncoding.DecodeString(enc.Username)
	if err != nil {
		return "", "", fmt.Errorf("decode username: %w", err)
	}
	p, err := base64.StdEncoding.DecodeString(enc.Password)
	if err != nil {
		return "", "", fmt.Errorf("decode password: %w", err)
	}
	return string(u), string(p), nil
}

// ValidateCredentials enforces the login form rules before any network
// call is made: the username must look like an email address and the
// password must be at least six characters.
func ValidateCredentials(username, password string) error {
	at := strings.Index(username, "@")
	dot := strings.LastIndex(username, ".")
	if at < 1 || dot < at+2 || dot == len(username)-1 {
		return fmt.Errorf("username must be a valid email address: %w", xerrors.ErrInvalidInput)
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters: %w", xerrors.ErrInvalidInput)
	}
	return nil
}
