package settlement

import (
	"context"
	"log/slog"
	"strconv"

	"expo-booth/common"
	"expo-booth/common/constant"
	"expo-booth/common/currency"
	"expo-booth/common/errs"
	"expo-booth/common/otel"
	"expo-booth/model"
	"expo-booth/outbound/sqlgen"

	"github.com/jackc/pgx/v5"
)

type pricedLine struct {
	Booth          sqlgen.FindBoothForOrderRow
	Quantity       int32
	UnitPrice      float64
	TotalPrice     float64
	SourcePrice    float64
	SourceCurrency currency.Currency
}

// Quote prices an order without creating it. The returned totals are
// computed the same way CreateOrder computes them, so a quoted amount is
// exactly what a subsequent order for the same booths will charge.
func (s *Settlement) Quote(ctx context.Context, req model.QuoteOrderRequest) (model.QuoteOrderResponse, error) {
	ctx, span := otel.Tracer.Start(ctx, "Settlement.Quote")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	event, err := s.Querier.FindEventById(ctx, req.EventId)
	if err == pgx.ErrNoRows {
		return model.QuoteOrderResponse{}, &errs.NotFoundError{Entity: "event", Ref: itoa(req.EventId)}
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to find event", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return model.QuoteOrderResponse{}, err
	}

	if !event.IsActive {
		return model.QuoteOrderResponse{}, &errs.ConflictError{Entity: "event", Ref: itoa(event.ID), Message: "is not active"}
	}

	priced, total, err := s.priceLines(ctx, s.Querier, event, req.Currency, req.Booths)
	if err != nil {
		return model.QuoteOrderResponse{}, err
	}

	lines := make([]model.QuoteLineResponse, 0, len(priced))
	for _, line := range priced {
		lines = append(lines, model.QuoteLineResponse{
			BoothId:        line.Booth.ID,
			BoothNumber:    line.Booth.BoothNumber,
			BoothTypeName:  line.Booth.BoothTypeName,
			Size:           line.Booth.Size,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			TotalPrice:     line.TotalPrice,
			Currency:       req.Currency,
			SourcePrice:    line.SourcePrice,
			SourceCurrency: line.SourceCurrency,
		})
	}

	return model.QuoteOrderResponse{
		TotalAmount: total,
		Currency:    req.Currency,
		Booths:      lines,
	}, nil
}

// priceLines resolves and prices every requested booth in the target
// currency. It enforces the per-order line cap configured on the event,
// the per-booth quantity cap and rejects duplicate or reserved booths.
func (s *Settlement) priceLines(
	ctx context.Context,
	q *sqlgen.Queries,
	event sqlgen.FindEventByIdRow,
	target currency.Currency,
	lines []model.OrderLineRequest,
) ([]pricedLine, float64, error) {
	if int32(len(lines)) > event.MaxBoothsPerOrder {
		return nil, 0, &errs.ConflictError{
			Entity:  "order",
			Ref:     itoa(event.ID),
			Message: "exceeds max booths per order of " + strconv.Itoa(int(event.MaxBoothsPerOrder)),
		}
	}

	seen := make(map[int64]bool, len(lines))
	priced := make([]pricedLine, 0, len(lines))

	var total float64
	for _, line := range lines {
		if seen[line.BoothId] {
			return nil, 0, &errs.ConflictError{Entity: "booth", Ref: itoa(line.BoothId), Message: "duplicated in order"}
		}
		seen[line.BoothId] = true

		if line.Quantity > s.maxQuantity {
			return nil, 0, &errs.ConflictError{
				Entity:  "booth",
				Ref:     itoa(line.BoothId),
				Message: "exceeds max quantity of " + strconv.Itoa(int(s.maxQuantity)),
			}
		}

		booth, err := q.FindBoothForOrder(ctx, sqlgen.FindBoothForOrderParams{
			ID:      line.BoothId,
			EventID: event.ID,
		})
		if err == pgx.ErrNoRows {
			return nil, 0, &errs.NotFoundError{Entity: "booth", Ref: itoa(line.BoothId)}
		}
		if err != nil {
			return nil, 0, err
		}

		if booth.IsReserved {
			return nil, 0, &errs.ConflictError{Entity: "booth", Ref: booth.BoothNumber, Message: "already reserved"}
		}

		unitPrice, err := s.Converter.Convert(booth.UnitPrice, currency.Currency(booth.Currency), target)
		if err != nil {
			return nil, 0, err
		}

		totalPrice := unitPrice * float64(line.Quantity)
		total += totalPrice

		priced = append(priced, pricedLine{
			Booth:          booth,
			Quantity:       line.Quantity,
			UnitPrice:      unitPrice,
			TotalPrice:     totalPrice,
			SourcePrice:    booth.UnitPrice,
			SourceCurrency: currency.Currency(booth.Currency),
		})
	}

	return priced, total, nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
