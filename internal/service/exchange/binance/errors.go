package binance

import (
	"errors"
	"strings"

	"github.com/KNICEX/spot-bot/internal/service/exchange"
	"github.com/adshao/go-binance/v2/common"
)

// https://developers.binance.com/docs/binance-spot-api-docs/errors
const (
	apiCodeUnknownSymbol    = -1121
	apiCodeNewOrderRejected = -2010
	apiCodeCancelRejected   = -2011
	apiCodeOrderNotFound    = -2013
	apiCodeInvalidAPIKey    = -2014
	apiCodeRejectedAPIKey   = -2015
)

// classify 把 go-binance 返回的错误映射为 exchange 错误分类
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if exchange.KindOf(err) != nil {
		return err
	}
	apiErr, ok := AsAPIError(err)
	if !ok {
		return exchange.NewError(op, exchange.ErrTransport, err)
	}
	switch apiErr.Code {
	case apiCodeInvalidAPIKey, apiCodeRejectedAPIKey:
		return exchange.NewError(op, exchange.ErrConfig, err)
	case apiCodeOrderNotFound, apiCodeCancelRejected, apiCodeUnknownSymbol:
		return exchange.NewError(op, exchange.ErrNotFound, err)
	default:
		return exchange.NewError(op, exchange.ErrRejected, err)
	}
}

func AsAPIError(err error) (*common.APIError, bool) {
	if err == nil {
		return nil, false
	}
	var apiErr *common.APIError
	if !errors.As(err, &apiErr) {
		return nil, false
	}
	return apiErr, true
}

func IsAPIErrorCode(err error, codes ...int64) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	for _, code := range codes {
		if apiErr.Code == code {
			return true
		}
	}
	return false
}

// opLabel "place limit order" -> "place_limit_order"
func opLabel(op string) string {
	return strings.ReplaceAll(op, " ", "_")
}
