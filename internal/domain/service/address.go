package service

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"defilens/internal/domain/model"
)

// ValidateAddress reports whether address is an EVM-style hex address with a
// lowercase 0x prefix. The EIP-55 checksum is not verified.
func ValidateAddress(address string) bool {
	return strings.HasPrefix(address, "0x") && common.IsHexAddress(address)
}

// ValidateToken checks the token contract address.
func ValidateToken(t model.TokenData) error {
	if !ValidateAddress(t.ContractAddress) {
		return fmt.Errorf("token %s: %w: %q", t.Symbol, ErrInvalidAddress, t.ContractAddress)
	}
	return nil
}
