// Package joincode implements the reversible joining-code token that lets a
// new user attach to an existing account. The token is base64 over
// "accountName.userName.accountId" and is a convenience identifier, not a
// security boundary.
package joincode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned when a token cannot be decoded
var ErrMalformed = errors.New("malformed joining code")

// JoiningCode carries the data needed to join an account
type JoiningCode struct {
	AccountName string
	UserName    string
	AccountID   string
}

// New builds a joining code for the given account, attributed to the user
// who generated it.
func New(accountName, userName, accountID string) JoiningCode {
	return JoiningCode{
		AccountName: accountName,
		UserName:    userName,
		AccountID:   accountID,
	}
}

// Parse decodes a token back into its parts. The account id is the segment
// after the last dot, so dots inside the account name survive the round trip.
func Parse(token string) (JoiningCode, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return JoiningCode{}, ErrMalformed
	}

	parts := strings.Split(string(decoded), ".")
	if len(parts) < 3 {
		return JoiningCode{}, ErrMalformed
	}

	accountID := parts[len(parts)-1]
	userName := parts[len(parts)-2]
	accountName := strings.Join(parts[:len(parts)-2], ".")

	if accountID == "" || userName == "" || accountName == "" {
		return JoiningCode{}, ErrMalformed
	}

	return JoiningCode{
		AccountName: accountName,
		UserName:    userName,
		AccountID:   accountID,
	}, nil
}

// String encodes the code into its opaque token form
func (c JoiningCode) String() string {
	raw := fmt.Sprintf("%s.%s.%s", c.AccountName, c.UserName, c.AccountID)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}
