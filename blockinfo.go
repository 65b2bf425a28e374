package suitdrop

import (
	"regexp"
	"time"

	"github.com/iov-one/suitdrop/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// DefaultLogger is returned by GetLogger when the context carries none.
var DefaultLogger = log.NewNopLogger()

var chainIDFormat = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`)

// IsValidChainID reports whether id is 6 to 20 characters of letters,
// digits, underscore and dash.
func IsValidChainID(id string) bool {
	return chainIDFormat.MatchString(id)
}

var errNoBlockTime = errors.Wrap(errors.ErrHuman, "block time not present in context")

// BlockInfo is the block a message is executed in.
type BlockInfo struct {
	header  abci.Header
	chainID string
}

// NewBlockInfo returns ErrInput for a malformed chain id.
func NewBlockInfo(header abci.Header, chainID string) (BlockInfo, error) {
	if !IsValidChainID(chainID) {
		return BlockInfo{}, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	return BlockInfo{header: header, chainID: chainID}, nil
}

func (b BlockInfo) Header() abci.Header {
	return b.header
}

func (b BlockInfo) ChainID() string {
	return b.chainID
}

func (b BlockInfo) Height() int64 {
	return b.header.Height
}

func (b BlockInfo) BlockTime() time.Time {
	return b.header.Time
}

func (b BlockInfo) UnixTime() UnixTime {
	return AsUnixTime(b.header.Time)
}
