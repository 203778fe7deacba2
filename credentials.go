package dydx

import (
	"fmt"
	"strconv"

	"github.com/tradewire/dydx-go/internal/ethaddr"
	"github.com/tradewire/dydx-go/signing"
)

// Credentials enable an authenticated sub-client. The set of variants is
// closed: APIKeyCredentials enables Private and SubaccountCredentials enables
// Subaccount.
type Credentials interface {
	validate() []string
	credentials()
}

// APIKeyCredentials authenticate requests to the v3 private API.
type APIKeyCredentials struct {
	Key        string
	Secret     string
	Passphrase string
	// EthereumAddress identifies the account. Required by GetAccount and
	// CreateOrder.
	EthereumAddress string
	// StarkPrivateKey and PositionID are passed to the signer by CreateOrder.
	StarkPrivateKey string
	PositionID      string
}

func (APIKeyCredentials) credentials() {}

func (c APIKeyCredentials) validate() []string {
	var errs []string
	if c.Key == "" {
		errs = append(errs, "API key is required")
	}
	if c.Secret == "" {
		errs = append(errs, "API secret is required")
	} else if _, err := signing.NewAPIKeySigner(c.Key, c.Secret, c.Passphrase); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Passphrase == "" {
		errs = append(errs, "API passphrase is required")
	}
	if c.EthereumAddress != "" {
		if err := ethaddr.Validate(c.EthereumAddress); err != nil {
			errs = append(errs, fmt.Sprintf("ethereum address: %v", err))
		}
	}
	if c.PositionID != "" {
		if _, err := strconv.ParseUint(c.PositionID, 10, 64); err != nil {
			errs = append(errs, "position id must be numeric")
		}
	}
	if c.StarkPrivateKey != "" && c.PositionID == "" {
		errs = append(errs, "position id is required with a STARK private key")
	}
	return errs
}

// SubaccountCredentials select the subaccount used by the v4 account
// endpoints.
type SubaccountCredentials struct {
	Address          string
	SubaccountNumber int
}

func (SubaccountCredentials) credentials() {}

// MaxSubaccountNumber is the highest subaccount number the chain accepts.
const MaxSubaccountNumber = 128000

func (c SubaccountCredentials) validate() []string {
	var errs []string
	if c.Address == "" {
		errs = append(errs, "subaccount address is required")
	}
	if c.SubaccountNumber < 0 || c.SubaccountNumber > MaxSubaccountNumber {
		errs = append(errs, fmt.Sprintf("subaccount number must be within [0, %d]", MaxSubaccountNumber))
	}
	return errs
}

var (
	_ Credentials = APIKeyCredentials{}
	_ Credentials = SubaccountCredentials{}
)
