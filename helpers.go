package dydx

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ISOTimeFormat is the timestamp layout used in query parameters and order
// expirations.
const ISOTimeFormat = "2006-01-02T15:04:05.000Z"

// NewClientID returns a random numeric client id for a new order.
func NewClientID() string {
	id := uuid.New()
	// Keep the value within the 32-bit range the chain accepts.
	return strconv.FormatUint(uint64(binary.BigEndian.Uint32(id[:4])), 10)
}

// AccountID returns the v3 account id of the given address and account
// number: a name-based UUID in the OID namespace.
func AccountID(address string, accountNumber int) string {
	name := "dydx" + strings.ToLower(address) + strconv.Itoa(accountNumber)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func isoTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(ISOTimeFormat)
}

func intParam(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
