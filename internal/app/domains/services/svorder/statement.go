package svorder

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"tourshop/internal/app/domains/entity/etorder"
	"tourshop/internal/app/domains/entity/etprimitive"
	"tourshop/internal/app/pkg/errorx"
)

// StatementLine 客户对账行（estado de cuenta）
type StatementLine struct {
	CustomerEmail string
	CustomerName  string
	Orders        int
	Pending       decimal.Decimal // pendiente 合计
	Verified      decimal.Decimal // verificado 合计
	Outstanding   decimal.Decimal // Pending + Verified
}

// AccountStatement 按客户邮箱汇总未结清订单，按未结金额倒序
func (s *OrderService) AccountStatement(ctx context.Context, actor etprimitive.Actor) ([]*StatementLine, error) {
	if !actor.IsAdmin() {
		return nil, errorx.ErrUnauthorized.WithMessage("only administrators can read the account statement")
	}

	orders, err := s.orderModule.ListOutstanding(ctx)
	if err != nil {
		return nil, fmt.Errorf("list outstanding orders failed: %w", err)
	}
	return BuildStatement(orders), nil
}

// BuildStatement 汇总订单为对账行
func BuildStatement(orders []*etorder.Order) []*StatementLine {
	byEmail := make(map[string]*StatementLine)
	for _, o := range orders {
		line, ok := byEmail[o.CustomerEmail]
		if !ok {
			line = &StatementLine{
				CustomerEmail: o.CustomerEmail,
				CustomerName:  o.CustomerName,
				Pending:       decimal.Zero,
				Verified:      decimal.Zero,
				Outstanding:   decimal.Zero,
			}
			byEmail[o.CustomerEmail] = line
		}

		switch o.Status {
		case etorder.StatusPendiente:
			line.Pending = line.Pending.Add(o.Total)
		case etorder.StatusVerificado:
			line.Verified = line.Verified.Add(o.Total)
		default:
			continue
		}
		line.Orders++
		line.Outstanding = line.Outstanding.Add(o.Total)
	}

	lines := make([]*StatementLine, 0, len(byEmail))
	for _, line := range byEmail {
		if line.Orders > 0 {
			lines = append(lines, line)
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		if c := lines[i].Outstanding.Cmp(lines[j].Outstanding); c != 0 {
			return c > 0
		}
		return lines[i].CustomerEmail < lines[j].CustomerEmail
	})
	return lines
}
