package keeper

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/dfba-labs/dfba-core/x/auctionhouse/types"
)

// computeOrderID derives the 256-bit order_id from the bit-exact byte
// encoding of (trader, market_id, batch_id, side, flow, price_tick, qty,
// nonce, expiry) in declaration order (spec §4.1 "Order ID"). The schema
// is stable across versions so indexers and UIs can re-derive it
// off-chain without querying the keeper.
func computeOrderID(trader string, marketID, batchID uint64, side types.Side, flow types.Flow, priceTick int32, qty, nonce string, expiry int64) [32]byte {
	h := sha3.NewLegacyKeccak256()

	writeString(h, trader)
	writeUint64(h, marketID)
	writeUint64(h, batchID)
	writeInt32(h, int32(side))
	writeInt32(h, int32(flow))
	writeInt32(h, priceTick)
	writeString(h, qty)
	writeString(h, nonce)
	writeInt64(h, expiry)

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func writeString(h interface{ Write([]byte) (int, error) }, s string) {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(s)))
	h.Write(lenBuf[:])
	h.Write([]byte(s))
}

func writeUint64(h interface{ Write([]byte) (int, error) }, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

func writeInt64(h interface{ Write([]byte) (int, error) }, v int64) {
	writeUint64(h, uint64(v))
}

func writeInt32(h interface{ Write([]byte) (int, error) }, v int32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	h.Write(buf[:])
}
