package validation

import (
	"fmt"

	"github.com/tradelog/trade-journal-backend/internal/api/request"
	"github.com/tradelog/trade-journal-backend/internal/model"
)

// ValidateOpenTrade checks an open-trade request.
func ValidateOpenTrade(req request.OpenTrade) error {
	if err := ValidateRequired("ticker", req.Ticker); err != nil {
		return err
	}
	if err := validateDirection(req.Direction); err != nil {
		return err
	}
	if err := validateAssetType(req.AssetType); err != nil {
		return err
	}
	if err := ValidatePositive("entryPrice", req.EntryPrice); err != nil {
		return err
	}
	if err := ValidatePositive("shares", req.Shares); err != nil {
		return err
	}
	return ValidateNonNegative("stopLoss", req.StopLoss)
}

// ValidateTradeAction checks an add-on or trim request.
func ValidateTradeAction(req request.TradeAction) error {
	if err := ValidatePositive("price", req.Price); err != nil {
		return err
	}
	return ValidatePositive("shares", req.Shares)
}

func validateDirection(direction string) error {
	switch model.Direction(direction) {
	case model.DirectionLong, model.DirectionShort:
		return nil
	}
	return fmt.Errorf("invalid direction: %q", direction)
}

func validateAssetType(assetType string) error {
	switch model.AssetType(assetType) {
	case model.AssetStock, model.AssetOption:
		return nil
	}
	return fmt.Errorf("invalid asset type: %q", assetType)
}
