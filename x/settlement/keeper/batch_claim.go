package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dfba-labs/dfba-core/x/settlement/types"
)

// ClaimResult carries one order's outcome from BatchClaim.
type ClaimResult struct {
	OrderID [32]byte
	Err     error
}

// BatchClaim implements spec §4.4 "Batch claim": each id is attempted
// independently against the outer context, already-claimed or cancelled
// orders are skipped without treating that as a batch failure, and one
// id's failure never partially writes another id's state (each Claim
// call owns its own cache context).
func (k *Keeper) BatchClaim(ctx sdk.Context, caller string, orderIDs [][32]byte) []ClaimResult {
	results := make([]ClaimResult, 0, len(orderIDs))
	for _, id := range orderIDs {
		err := k.Claim(ctx, caller, id)
		if err == types.ErrAlreadyClaimed || err == types.ErrCancelled {
			results = append(results, ClaimResult{OrderID: id, Err: nil})
			continue
		}
		results = append(results, ClaimResult{OrderID: id, Err: err})
	}
	return results
}
