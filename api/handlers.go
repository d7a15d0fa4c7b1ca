package api

import (
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cosmossdk.io/math"

	"github.com/dfba-labs/dfba-core/pkg/events"
	"github.com/dfba-labs/dfba-core/pkg/metrics"
	ahtypes "github.com/dfba-labs/dfba-core/x/auctionhouse/types"
	feemodeltypes "github.com/dfba-labs/dfba-core/x/feemodel/types"
)

func orderIDToHex(id [32]byte) string { return hex.EncodeToString(id[:]) }

func orderIDFromHex(s string) ([32]byte, error) {
	var id [32]byte
	bz, err := hex.DecodeString(s)
	if err != nil {
		return id, err
	}
	if len(bz) != 32 {
		return id, errors.New("order id must be 32 bytes")
	}
	copy(id[:], bz)
	return id, nil
}

func parseInt(s string) (math.Int, bool) { return math.NewIntFromString(s) }

type createMarketRequest struct {
	Caller            string `json:"caller"`
	Kind              string `json:"kind"` // "spot" | "perp"
	BaseOrCollateral  string `json:"base_or_collateral"`
	QuoteOrOracle     string `json:"quote_or_oracle"`
	BatchDurationSecs int64  `json:"batch_duration_secs"`
}

func (s *Server) handleCreateMarket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req createMarketRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var kind ahtypes.MarketKind
	switch req.Kind {
	case "spot":
		kind = ahtypes.MarketKindSpot
	case "perp":
		kind = ahtypes.MarketKindPerp
	default:
		writeError(w, http.StatusBadRequest, "kind must be spot or perp")
		return
	}
	ctx := s.engine.NewContext(time.Now())
	marketID, err := s.engine.AuctionHouse.CreateMarket(ctx, req.Caller, kind, req.BaseOrCollateral, req.QuoteOrOracle, req.BatchDurationSecs)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"market_id": marketID})
}

func (s *Server) handleGetMarket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	marketID, ok := parsePathUint(r.URL.Path, "/v1/markets/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid market id")
		return
	}
	ctx := s.engine.NewContext(time.Now())
	market, ok := s.engine.AuctionHouse.GetMarket(ctx, marketID)
	if !ok {
		writeError(w, http.StatusNotFound, "market not found")
		return
	}
	writeJSON(w, http.StatusOK, market)
}

type submitOrderRequest struct {
	Trader    string `json:"trader"`
	MarketID  uint64 `json:"market_id"`
	Side      string `json:"side"` // "buy" | "sell"
	Flow      string `json:"flow"` // "maker" | "taker"
	PriceTick int32  `json:"price_tick"`
	Qty       string `json:"qty"`
	Nonce     string `json:"nonce"`
	Expiry    int64  `json:"expiry"`
}

func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req submitOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var side ahtypes.Side
	switch req.Side {
	case "buy":
		side = ahtypes.SideBuy
	case "sell":
		side = ahtypes.SideSell
	default:
		writeError(w, http.StatusBadRequest, "side must be buy or sell")
		return
	}
	var flow ahtypes.Flow
	switch req.Flow {
	case "maker":
		flow = ahtypes.FlowMaker
	case "taker":
		flow = ahtypes.FlowTaker
	default:
		writeError(w, http.StatusBadRequest, "flow must be maker or taker")
		return
	}
	qty, ok := parseInt(req.Qty)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid qty")
		return
	}
	nonce, ok := parseInt(req.Nonce)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid nonce")
		return
	}

	start := time.Now()
	ctx := s.engine.NewContext(start)
	orderID, batchID, err := s.engine.Settlement.Submit(ctx, req.Trader, req.MarketID, side, flow, req.PriceTick, qty, nonce, req.Expiry)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	marketIDStr := strconv.FormatUint(req.MarketID, 10)
	metrics.GetCollector().RecordOrder(marketIDStr, side.String(), flow.String())
	metrics.GetCollector().RecordOrderLatency(marketIDStr, float64(time.Since(start).Milliseconds()))
	s.hub.Publish(events.ChannelOrderSubmitted, map[string]interface{}{
		"order_id": orderIDToHex(orderID), "trader": req.Trader, "market_id": req.MarketID, "batch_id": batchID,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order_id": orderIDToHex(orderID),
		"batch_id": batchID,
	})
}

func (s *Server) handleOrderSub(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/orders/")
	parts := strings.Split(rest, "/")
	orderID, err := orderIDFromHex(parts[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		s.getOrder(w, r, orderID)
	case len(parts) == 1 && r.Method == http.MethodDelete:
		s.cancelOrder(w, r, orderID)
	case len(parts) == 2 && parts[1] == "claim" && r.Method == http.MethodPost:
		s.claimOrder(w, r, orderID)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request, orderID [32]byte) {
	ctx := s.engine.NewContext(time.Now())
	order, ok := s.engine.AuctionHouse.GetOrder(ctx, orderID)
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	state, _ := s.engine.AuctionHouse.GetOrderState(ctx, orderID)
	writeJSON(w, http.StatusOK, map[string]interface{}{"order": order, "state": state})
}

type cancelOrderRequest struct {
	Caller string `json:"caller"`
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request, orderID [32]byte) {
	var req cancelOrderRequest
	decodeBody(r, &req)
	ctx := s.engine.NewContext(time.Now())
	if err := s.engine.AuctionHouse.CancelOrder(ctx, req.Caller, orderID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.hub.Publish(events.ChannelOrderCancelled, map[string]interface{}{"order_id": orderIDToHex(orderID)})
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

type claimRequest struct {
	Caller string `json:"caller"`
}

func (s *Server) claimOrder(w http.ResponseWriter, r *http.Request, orderID [32]byte) {
	var req claimRequest
	decodeBody(r, &req)
	start := time.Now()
	ctx := s.engine.NewContext(start)
	err := s.engine.Settlement.Claim(ctx, req.Caller, orderID)
	order, _ := s.engine.AuctionHouse.GetOrder(ctx, orderID)
	marketIDStr := strconv.FormatUint(order.MarketID, 10)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.GetCollector().RecordClaim(marketIDStr, outcome, float64(time.Since(start).Milliseconds()))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.hub.Publish(events.ChannelOrderClaimed, map[string]interface{}{"order_id": orderIDToHex(orderID)})
	writeJSON(w, http.StatusOK, map[string]string{"status": "claimed"})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/batches/")
	parts := strings.Split(rest, "/")
	if len(parts) < 2 {
		writeError(w, http.StatusBadRequest, "expected /v1/batches/{market_id}/{batch_id}[/finalize]")
		return
	}
	marketID, err1 := strconv.ParseUint(parts[0], 10, 64)
	batchID, err2 := strconv.ParseUint(parts[1], 10, 64)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "invalid market_id or batch_id")
		return
	}

	if len(parts) == 3 && parts[2] == "finalize" && r.Method == http.MethodPost {
		s.stepFinalize(w, r, marketID, batchID)
		return
	}
	if len(parts) == 2 && r.Method == http.MethodGet {
		s.getBatch(w, r, marketID, batchID)
		return
	}
	writeError(w, http.StatusNotFound, "not found")
}

type stepFinalizeRequest struct {
	MaxSteps int `json:"max_steps"`
}

func (s *Server) stepFinalize(w http.ResponseWriter, r *http.Request, marketID, batchID uint64) {
	var req stepFinalizeRequest
	decodeBody(r, &req)
	if req.MaxSteps <= 0 {
		req.MaxSteps = 64
	}
	ctx := s.engine.NewContext(time.Now())
	phase, done, err := s.engine.AuctionHouse.StepFinalize(ctx, marketID, batchID, req.MaxSteps)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if done {
		marketIDStr := strconv.FormatUint(marketID, 10)
		for _, side := range []ahtypes.Side{ahtypes.SideBuy, ahtypes.SideSell} {
			if clearing, ok := s.engine.AuctionHouse.GetClearing(ctx, marketID, batchID, side); ok && clearing.Finalized {
				qty, _ := strconv.ParseFloat(clearing.ClearedQty.String(), 64)
				metrics.GetCollector().RecordBatchFinalized(marketIDStr, side.String(), clearing.ClearingTick, qty)
			}
		}
		s.hub.Publish(events.ChannelBatchFinalized, map[string]interface{}{"market_id": marketID, "batch_id": batchID})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"phase": phase.String(), "done": done})
}

func (s *Server) getBatch(w http.ResponseWriter, r *http.Request, marketID, batchID uint64) {
	ctx := s.engine.NewContext(time.Now())
	bs, ok := s.engine.AuctionHouse.GetBatchState(ctx, marketID, batchID)
	if !ok {
		writeError(w, http.StatusNotFound, "batch not found")
		return
	}
	buyClearing, _ := s.engine.AuctionHouse.GetClearing(ctx, marketID, batchID, ahtypes.SideBuy)
	sellClearing, _ := s.engine.AuctionHouse.GetClearing(ctx, marketID, batchID, ahtypes.SideSell)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"phase": bs.Phase.String(),
		"buy":   buyClearing,
		"sell":  sellClearing,
	})
}

type setPriceRequest struct {
	Price string `json:"price"`
}

func (s *Server) handleSetPrice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	marketID, ok := parsePathUint(r.URL.Path, "/v1/oracle/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid market id")
		return
	}
	var req setPriceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	price, ok := parseInt(req.Price)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid price")
		return
	}
	s.engine.Oracle.SetPrice(marketID, price)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type depositRequest struct {
	User   string `json:"user"`
	Token  string `json:"token"`
	Amount string `json:"amount"`
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req depositRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, ok := parseInt(req.Amount)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	ctx := s.engine.NewContext(time.Now())
	s.engine.Vault.Deposit(ctx, req.User, req.Token, amount)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type setFeesRequest struct {
	TakerFeeBps  uint16 `json:"taker_fee_bps"`
	MakerFeeBps  uint16 `json:"maker_fee_bps"`
	FeeRecipient string `json:"fee_recipient"`
}

func (s *Server) handleSetFees(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	marketID, ok := parsePathUint(r.URL.Path, "/v1/fees/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid market id")
		return
	}
	var req setFeesRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx := s.engine.NewContext(time.Now())
	s.engine.FeeModel.SetMarketFees(ctx, feemodeltypes.MarketFees{
		MarketID:     marketID,
		TakerFeeBps:  req.TakerFeeBps,
		MakerFeeBps:  req.MakerFeeBps,
		FeeRecipient: req.FeeRecipient,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parsePathUint(path, prefix string) (uint64, bool) {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.TrimSuffix(rest, "/")
	v, err := strconv.ParseUint(rest, 10, 64)
	return v, err == nil
}
