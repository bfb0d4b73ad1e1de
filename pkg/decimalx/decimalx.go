package decimalx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNotPositive = errors.New("must be greater than 0")

// MustFromString 只用于常量和测试数据, 非法输入直接 panic
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Errorf("decimalx: %q: %w", s, err))
	}
	return d
}

// ParsePositive 解析用户输入的数量/价格, 只接受大于 0 的数
func ParsePositive(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s %w", d.String(), ErrNotPositive)
	}
	return d, nil
}
