package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"expo-booth/common"
	"expo-booth/common/constant"
	"expo-booth/common/currency"
	"expo-booth/common/otel"
	"expo-booth/model"
	"expo-booth/outbound/sqlgen"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"golang.org/x/text/message"
)

type OrderEvent struct {
	Querier           *sqlgen.Queries
	Publisher         jetstream.Publisher
	CurrencyFormatter *message.Printer

	Timeout time.Duration
}

func (in OrderEvent) CreateHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.CreateOrderEventMessage
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "create order event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	traceIdAttr := slog.String(constant.LogFieldTraceId, ulid.Make().String())
	reqAttr := slog.Any(constant.LogFieldPayload, string(msg))

	sendEmailReq := model.SendEmailEventMessage{
		To:      req.Email,
		Subject: "Order Confirmation",
		Body:    in.buildOrderConfirmationEmailBody(req),
	}

	err = common.PublishMessage(ctx, in.Publisher, constant.SubjectSendEmail, sendEmailReq)
	if err != nil {
		slog.ErrorContext(ctx, "create order event publish error", slog.Any(constant.LogFieldErr, err), reqAttr, traceIdAttr)
		return err
	}

	slog.DebugContext(ctx, "create order event publish success", reqAttr, traceIdAttr)

	return nil
}

func (in OrderEvent) buildOrderConfirmationEmailBody(req model.CreateOrderEventMessage) string {
	return fmt.Sprintf(constant.EmailOrderConfirmationTemplate,
		req.Name,
		req.OrderNo,
		req.BoothNames,
		in.formatAmount(req.Currency, req.TotalAmount),
	)
}

// CompleteHandler emails the buyer a receipt for a settled order. The
// receipt rows are read from the database rather than the message so
// a redelivered message cannot email stale amounts.
func (in OrderEvent) CompleteHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.CompleteOrderEventMessage
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "complete order event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	ctx, span := otel.Tracer.Start(ctx, "OrderEvent.complete")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	slog.InfoContext(ctx, "complete order event receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	receiptRows, err := in.Querier.FindOrderReceiptRows(ctx, req.OrderID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to find order receipt rows", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return err
	}

	if len(receiptRows) == 0 {
		slog.WarnContext(ctx, "order receipt not found", traceIdAttr)
		return nil
	}

	sendEmailReq := model.SendEmailEventMessage{
		To:      receiptRows[0].Email,
		Subject: "Payment Receipt",
		Body:    in.buildOrderReceiptEmailBody(receiptRows, req.PaymentTimestamp),
	}

	err = common.PublishMessage(ctx, in.Publisher, constant.SubjectSendEmail, sendEmailReq)
	if err != nil {
		slog.ErrorContext(ctx, "complete order event publish error", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return err
	}

	slog.InfoContext(ctx, "complete order event publish success", traceIdAttr)

	return nil
}

func (in OrderEvent) buildOrderReceiptEmailBody(rows []sqlgen.FindOrderReceiptRowsRow, paymentTimestamp string) string {
	head := rows[0]

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("Booth %s (%s, %s) x%d: %s",
			row.BoothNumber,
			row.BoothTypeName,
			row.Size,
			row.Quantity,
			in.formatAmount(head.Currency, row.TotalPrice),
		))
	}

	return fmt.Sprintf(constant.EmailOrderReceiptTemplate,
		head.FirstName+" "+head.LastName,
		head.OrderNo,
		strings.Join(lines, "\n"),
		in.formatAmount(head.Currency, head.TotalAmount),
		paymentTimestamp,
	)
}

func (in OrderEvent) CancelHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.CancelOrderEventMessage
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "cancel order event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	traceIdAttr := slog.String(constant.LogFieldTraceId, ulid.Make().String())
	reqAttr := slog.Any(constant.LogFieldPayload, string(msg))

	sendEmailReq := model.SendEmailEventMessage{
		To:      req.Email,
		Subject: "Order Cancellation",
		Body:    in.buildOrderCancellationEmailBody(req),
	}

	err = common.PublishMessage(ctx, in.Publisher, constant.SubjectSendEmail, sendEmailReq)
	if err != nil {
		slog.ErrorContext(ctx, "cancel order event publish error", slog.Any(constant.LogFieldErr, err), reqAttr, traceIdAttr)
		return err
	}

	slog.DebugContext(ctx, "cancel order event publish success", reqAttr, traceIdAttr)

	return nil
}

func (in OrderEvent) buildOrderCancellationEmailBody(req model.CancelOrderEventMessage) string {
	return fmt.Sprintf(constant.EmailOrderCancellationTemplate,
		req.Name,
		req.OrderNo,
		in.formatAmount(req.Currency, req.TotalAmount),
	)
}

// formatAmount renders a money amount for emails. KHR has no minor
// unit, USD keeps two decimals.
func (in OrderEvent) formatAmount(cur string, amount float64) string {
	if cur == string(currency.KHR) {
		return in.CurrencyFormatter.Sprintf("KHR %.0f", amount)
	}

	return in.CurrencyFormatter.Sprintf("USD %.2f", amount)
}
