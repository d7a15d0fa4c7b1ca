// Package app wires the Auction House, Settlement Claim, and their
// collaborators behind one commit multistore, the in-process analogue of
// the teacher's App (app/app.go) minus baseapp/CometBFT/auth/bank/
// staking — DFBA Core is the matching/clearing engine, not a consensus
// node (spec §1 Non-goals; see DESIGN.md "Dropped teacher dependencies").
package app

import (
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	auctionhousekeeper "github.com/dfba-labs/dfba-core/x/auctionhouse/keeper"
	feemodelkeeper "github.com/dfba-labs/dfba-core/x/feemodel/keeper"
	"github.com/dfba-labs/dfba-core/x/oracle"
	settlementkeeper "github.com/dfba-labs/dfba-core/x/settlement/keeper"
	settlementtypes "github.com/dfba-labs/dfba-core/x/settlement/types"
	vaultkeeper "github.com/dfba-labs/dfba-core/x/vault/keeper"
)

const adminAddress = "dfba/admin"

// Engine is the in-process composition root: one commit multistore, one
// Auction House keeper, one Settlement Claim keeper, and their
// collaborators. Analogous to the teacher's App, without a consensus
// runtime above it.
type Engine struct {
	store      storetypes.CommitMultiStore
	logger     log.Logger
	AuctionHouse *auctionhousekeeper.Keeper
	Settlement   *settlementkeeper.Keeper
	Vault        *vaultkeeper.Keeper
	FeeModel     *feemodelkeeper.Keeper
	Oracle       *oracle.InMemory
}

// NewEngine constructs an Engine backed by an in-memory store, grounded
// on the test-harness store wiring shared across this module's keeper
// tests (cosmossdk.io/store.NewCommitMultiStore + MountStoreWithDB +
// LoadLatestVersion).
func NewEngine(logger log.Logger) *Engine {
	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())

	ahKey := storetypes.NewKVStoreKey("auctionhouse")
	settleKey := storetypes.NewKVStoreKey("settlement")
	vaultKey := storetypes.NewKVStoreKey("vault")
	feeKey := storetypes.NewKVStoreKey("feemodel")

	for _, key := range []storetypes.StoreKey{ahKey, settleKey, vaultKey, feeKey} {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		panic(err)
	}

	vault := vaultkeeper.NewKeeper(vaultKey, logger, adminAddress)
	fees := feemodelkeeper.NewKeeper(feeKey, logger)
	oracleK := oracle.NewInMemory(time.Hour)
	ah := auctionhousekeeper.NewKeeper(nil, ahKey, logger, adminAddress, settlementtypes.CollaboratorIdentity)
	settlement := settlementkeeper.NewKeeper(nil, settleKey, logger, ah, vault, fees, oracleK)

	genesisCtx := sdk.NewContext(cms, cmtproto.Header{}, false, logger)
	vault.AuthorizeSettler(genesisCtx, settlementtypes.CollaboratorIdentity)

	return &Engine{
		store:        cms,
		logger:       logger,
		AuctionHouse: ah,
		Settlement:   settlement,
		Vault:        vault,
		FeeModel:     fees,
		Oracle:       oracleK,
	}
}

// NewContext returns a fresh sdk.Context over the engine's store at the
// given block time, the unit of "one call" every Engine method operates
// within (spec §5 "all operations on a given market are linearized by
// the calling context").
func (e *Engine) NewContext(blockTime time.Time) sdk.Context {
	header := cmtproto.Header{Time: blockTime}
	return sdk.NewContext(e.store, header, false, e.logger)
}
