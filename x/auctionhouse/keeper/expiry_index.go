package keeper

import (
	"bytes"
	"sync"

	"github.com/google/btree"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dfba-labs/dfba-core/x/auctionhouse/types"
)

// expiryBtreeDegree mirrors the teacher's orderbook B-tree degree choice
// (x/orderbook/keeper/orderbook_btree.go btreeDegree) for the same
// cache-friendly node sizing.
const expiryBtreeDegree = 32

// expiryItem orders (expiry, order_id) pairs ascending by expiry, then by
// order_id for a stable tie-break, implementing btree.Item the way
// priceLevelItem does for price levels in the teacher's B-tree order book.
type expiryItem struct {
	expiry  int64
	orderID [32]byte
}

func (a *expiryItem) Less(b btree.Item) bool {
	other := b.(*expiryItem)
	if a.expiry != other.expiry {
		return a.expiry < other.expiry
	}
	return bytes.Compare(a.orderID[:], other.orderID[:]) < 0
}

// expiryIndex is a process-local, non-consensus auxiliary index letting
// an indexer or operator efficiently ask "which resting orders in this
// market expire soonest" (spec §6 read surface), without an O(n) scan of
// the order table. It is rebuilt from genuine keeper state on process
// restart by a caller that replays orders with expiry != 0; it is never
// itself consulted by submit_order/cancel_order/claim correctness.
type expiryIndex struct {
	mu    sync.Mutex
	trees map[uint64]*btree.BTree
}

func newExpiryIndex() *expiryIndex {
	return &expiryIndex{trees: make(map[uint64]*btree.BTree)}
}

func (idx *expiryIndex) treeFor(marketID uint64) *btree.BTree {
	t, ok := idx.trees[marketID]
	if !ok {
		t = btree.New(expiryBtreeDegree)
		idx.trees[marketID] = t
	}
	return t
}

func (idx *expiryIndex) track(marketID uint64, expiry int64, orderID [32]byte) {
	if expiry == 0 {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.treeFor(marketID).ReplaceOrInsert(&expiryItem{expiry: expiry, orderID: orderID})
}

func (idx *expiryIndex) untrack(marketID uint64, expiry int64, orderID [32]byte) {
	if expiry == 0 {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.treeFor(marketID).Delete(&expiryItem{expiry: expiry, orderID: orderID})
}

// expiringBefore returns order IDs in marketID whose expiry is strictly
// before ts, ascending by expiry.
func (idx *expiryIndex) expiringBefore(marketID uint64, ts int64) [][32]byte {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	var out [][32]byte
	idx.treeFor(marketID).AscendLessThan(&expiryItem{expiry: ts}, func(item btree.Item) bool {
		out = append(out, item.(*expiryItem).orderID)
		return true
	})
	return out
}

// TrackExpiry registers order_id's expiry in the in-memory index. Called
// by SubmitOrder; exported so a cold-start replay routine can rebuild the
// index from persisted orders too.
func (k *Keeper) TrackExpiry(marketID uint64, expiry int64, orderID [32]byte) {
	k.expiry.track(marketID, expiry, orderID)
}

// UntrackExpiry removes order_id from the in-memory expiry index. Called
// by CancelOrder and by Settlement Claim on claim.
func (k *Keeper) UntrackExpiry(marketID uint64, expiry int64, orderID [32]byte) {
	k.expiry.untrack(marketID, expiry, orderID)
}

// OrdersExpiringBefore implements the indexer convenience query backing
// "which orders expire soonest" (spec §6 read surface), resolving each
// indexed order_id against the durable order table.
func (k *Keeper) OrdersExpiringBefore(ctx sdk.Context, marketID uint64, ts int64) []types.Order {
	ids := k.expiry.expiringBefore(marketID, ts)
	orders := make([]types.Order, 0, len(ids))
	for _, id := range ids {
		if order, ok := k.GetOrder(ctx, id); ok {
			orders = append(orders, order)
		}
	}
	return orders
}
