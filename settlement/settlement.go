package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"expo-booth/common"
	"expo-booth/common/constant"
	"expo-booth/common/contract"
	"expo-booth/common/currency"
	"expo-booth/common/errs"
	"expo-booth/common/metrics"
	"expo-booth/common/otel"
	"expo-booth/model"
	"expo-booth/outbound/bakong"
	"expo-booth/outbound/sqlgen"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/viper"
)

// ErrAlreadySettled is returned by CompleteOrder when another caller
// settled the transaction first. The order is completed either way, so
// callers treat it as success after re-reading the transaction.
var ErrAlreadySettled = errors.New("transaction already settled")

// Settlement owns the order lifecycle: quoting, order creation, KHQR
// issuance and the commit-or-abort settlement unit. Every write path
// runs inside a single database transaction.
type Settlement struct {
	Db        contract.DbConn
	Querier   *sqlgen.Queries
	Publisher jetstream.Publisher
	Converter *currency.Converter
	Gateway   *bakong.Client

	TimeNow func() time.Time

	maxQuantity int32
}

func New(
	cfg *viper.Viper,
	db contract.DbConn,
	querier *sqlgen.Queries,
	publisher jetstream.Publisher,
	converter *currency.Converter,
	gateway *bakong.Client,
) *Settlement {
	maxQuantity := cfg.GetInt32("order.max_quantity_per_booth")
	if maxQuantity <= 0 {
		maxQuantity = constant.MaxQuantityPerBooth
	}

	return &Settlement{
		Db:        db,
		Querier:   querier,
		Publisher: publisher,
		Converter: converter,
		Gateway:   gateway,
		TimeNow:   time.Now,

		maxQuantity: maxQuantity,
	}
}

// CreateOrder prices the requested booths, allocates an order serial and
// persists the order with its lines in one transaction. Booths are NOT
// reserved here; reservation happens when the payment settles.
func (s *Settlement) CreateOrder(ctx context.Context, req model.CreateOrderRequest, ip string) (model.CreateOrderResponse, error) {
	ctx, span := otel.Tracer.Start(ctx, "Settlement.CreateOrder")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	tx, err := s.Db.Begin(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to begin transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return model.CreateOrderResponse{}, err
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			slog.ErrorContext(ctx, "failed to rollback transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		}
	}()

	withTx := s.Querier.WithTx(tx)

	event, err := withTx.FindEventById(ctx, req.EventId)
	if err == pgx.ErrNoRows {
		return model.CreateOrderResponse{}, &errs.NotFoundError{Entity: "event", Ref: itoa(req.EventId)}
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to find event", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return model.CreateOrderResponse{}, err
	}

	if !event.IsActive {
		return model.CreateOrderResponse{}, &errs.ConflictError{Entity: "event", Ref: itoa(event.ID), Message: "is not active"}
	}

	priced, total, err := s.priceLines(ctx, withTx, event, req.Currency, req.Booths)
	if err != nil {
		return model.CreateOrderResponse{}, err
	}

	serial, err := withTx.NextSerial(ctx, sqlgen.NextSerialParams{
		CounterName: constant.SerialCounterOrder,
		Prefix:      constant.SerialPrefixOrder,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to allocate order serial", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return model.CreateOrderResponse{}, err
	}

	orderNo := FormatSerial(serial.Prefix, serial.Value)
	externalId := ulid.Make().String()

	orderId, err := withTx.InsertOrder(ctx, sqlgen.InsertOrderParams{
		EventID:     event.ID,
		OrderNo:     orderNo,
		ExternalID:  externalId,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		CompanyName: textOrNull(req.CompanyName),
		Nationality: textOrNull(req.Nationality),
		Note:        textOrNull(req.Note),
		Ip:          ip,
		Currency:    string(req.Currency),
		TotalAmount: total,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to insert order", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return model.CreateOrderResponse{}, err
	}

	boothNumbers := make([]string, 0, len(priced))
	for _, line := range priced {
		boothNumbers = append(boothNumbers, line.Booth.BoothNumber)

		err = withTx.InsertOrderItem(ctx, sqlgen.InsertOrderItemParams{
			OrderID:        orderId,
			BoothID:        line.Booth.ID,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			TotalPrice:     line.TotalPrice,
			Currency:       string(req.Currency),
			SourcePrice:    line.SourcePrice,
			SourceCurrency: string(line.SourceCurrency),
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to insert order item", traceIdAttr, slog.Any(constant.LogFieldErr, err))
			return model.CreateOrderResponse{}, err
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to commit transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return model.CreateOrderResponse{}, err
	}

	metrics.OrdersCreated.Inc()

	publishErr := common.PublishMessage(ctx, s.Publisher, constant.SubjectCreateOrder, model.CreateOrderEventMessage{
		ID:          orderId,
		OrderNo:     orderNo,
		Name:        req.FirstName + " " + req.LastName,
		Email:       req.Email,
		TotalAmount: total,
		Currency:    string(req.Currency),
		BoothNames:  strings.Join(boothNumbers, ", "),
	})
	if publishErr != nil {
		slog.ErrorContext(ctx, "failed to publish create order message", traceIdAttr, slog.Any(constant.LogFieldErr, publishErr))
	}

	slog.InfoContext(ctx, "insert order success", traceIdAttr, slog.Any(constant.LogFieldResponse, orderNo))

	return model.CreateOrderResponse{
		Id:          orderId,
		OrderNo:     orderNo,
		ExternalId:  externalId,
		TotalAmount: total,
		Currency:    req.Currency,
		Status:      model.OrderStatusPending,
	}, nil
}

// CreatePayment allocates a transaction serial, renders the KHQR payload
// for the order total and persists the pending transaction.
func (s *Settlement) CreatePayment(ctx context.Context, req model.CreatePaymentRequest, ip string) (model.CreatePaymentResponse, error) {
	ctx, span := otel.Tracer.Start(ctx, "Settlement.CreatePayment")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	order, err := s.Querier.FindOrderById(ctx, req.OrderId)
	if err == pgx.ErrNoRows {
		return model.CreatePaymentResponse{}, &errs.NotFoundError{Entity: "order", Ref: itoa(req.OrderId)}
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to find order", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return model.CreatePaymentResponse{}, err
	}

	if order.Status != string(model.OrderStatusPending) {
		return model.CreatePaymentResponse{}, &errs.ConflictError{Entity: "order", Ref: order.OrderNo, Message: "is not pending"}
	}

	tx, err := s.Db.Begin(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to begin transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return model.CreatePaymentResponse{}, err
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			slog.ErrorContext(ctx, "failed to rollback transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		}
	}()

	withTx := s.Querier.WithTx(tx)

	serial, err := withTx.NextSerial(ctx, sqlgen.NextSerialParams{
		CounterName: constant.SerialCounterTransaction,
		Prefix:      constant.SerialPrefixTransaction,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to allocate transaction serial", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return model.CreatePaymentResponse{}, err
	}

	transactionNo := FormatSerial(serial.Prefix, serial.Value)

	khqr, err := s.Gateway.GenerateKHQR(bakong.KHQRRequest{
		TransactionNo: transactionNo,
		Amount:        order.TotalAmount,
		Currency:      currency.Currency(order.Currency),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate khqr", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return model.CreatePaymentResponse{}, err
	}

	transactionId, err := withTx.InsertTransaction(ctx, sqlgen.InsertTransactionParams{
		OrderID:       order.ID,
		TransactionNo: transactionNo,
		Amount:        order.TotalAmount,
		Currency:      order.Currency,
		QrCode:        khqr.QR,
		Md5:           khqr.Md5,
		Note:          textOrNull(req.Note),
		Ip:            ip,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to insert transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return model.CreatePaymentResponse{}, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to commit transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return model.CreatePaymentResponse{}, err
	}

	slog.InfoContext(ctx, "insert transaction success", traceIdAttr, slog.Any(constant.LogFieldResponse, transactionNo))

	return model.CreatePaymentResponse{
		Id:            transactionId,
		TransactionNo: transactionNo,
		QRCode:        khqr.QR,
		Md5:           khqr.Md5,
		Amount:        order.TotalAmount,
		Currency:      currency.Currency(order.Currency),
	}, nil
}

// CompleteOrder settles a confirmed payment: it marks the transaction
// completed, reserves every booth on the order and completes the order,
// all in one transaction. The transaction update is guarded on pending
// status, so a concurrent settle of the same payment loses the race and
// gets ErrAlreadySettled with nothing written.
//
// A booth that turns out reserved by another order aborts the whole unit
// and reports an InvariantError. Nothing is reserved partially.
func (s *Settlement) CompleteOrder(ctx context.Context, trx sqlgen.FindTransactionByIdRow, ack *bakong.AccountTransactionData) (time.Time, error) {
	ctx, span := otel.Tracer.Start(ctx, "Settlement.CompleteOrder")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	paymentTime := s.TimeNow().UTC()
	if ack.AcknowledgedDateMs > 0 {
		paymentTime = time.UnixMilli(ack.AcknowledgedDateMs).UTC()
	}

	ackJSON, err := json.Marshal(ack)
	if err != nil {
		return time.Time{}, err
	}

	tx, err := s.Db.Begin(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to begin transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return time.Time{}, err
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			slog.ErrorContext(ctx, "failed to rollback transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		}
	}()

	withTx := s.Querier.WithTx(tx)

	cmd, err := withTx.UpdateTransactionCompleted(ctx, sqlgen.UpdateTransactionCompletedParams{
		ID:               trx.ID,
		PaymentAck:       ackJSON,
		PaymentTimestamp: pgtype.Timestamp{Time: paymentTime, Valid: true},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to update transaction status", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return time.Time{}, err
	}

	if cmd.RowsAffected() == 0 {
		slog.DebugContext(ctx, "transaction already settled", traceIdAttr)
		return time.Time{}, ErrAlreadySettled
	}

	order, err := withTx.FindOrderById(ctx, trx.OrderID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to find order", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return time.Time{}, err
	}

	items, err := withTx.FindOrderItems(ctx, trx.OrderID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to find order items", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return time.Time{}, err
	}

	for _, item := range items {
		cmd, err = withTx.ReserveBooth(ctx, sqlgen.ReserveBoothParams{
			ID:      item.BoothID,
			OrderID: pgtype.Int8{Int64: order.ID, Valid: true},
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to reserve booth", traceIdAttr, slog.Any(constant.LogFieldErr, err))
			return time.Time{}, err
		}

		if cmd.RowsAffected() == 0 {
			metrics.SettlementConflicts.Inc()
			invErr := &errs.InvariantError{BoothID: item.BoothID, OrderNo: order.OrderNo}
			slog.ErrorContext(ctx, "booth reservation conflict on settlement", traceIdAttr, slog.Any(constant.LogFieldErr, invErr))
			common.UtilSpanError(span, invErr)
			return time.Time{}, invErr
		}
	}

	cmd, err = withTx.UpdateOrderCompleted(ctx, sqlgen.UpdateOrderCompletedParams{
		ID:          order.ID,
		CompletedAt: pgtype.Timestamp{Time: paymentTime, Valid: true},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to update order status", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return time.Time{}, err
	}

	if cmd.RowsAffected() == 0 {
		return time.Time{}, &errs.ConflictError{Entity: "order", Ref: order.OrderNo, Message: "is not pending"}
	}

	err = tx.Commit(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to commit transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return time.Time{}, err
	}

	metrics.OrdersCompleted.Inc()

	publishErr := common.PublishMessage(ctx, s.Publisher, constant.SubjectCompleteOrder, model.CompleteOrderEventMessage{
		OrderID:          order.ID,
		TransactionNo:    trx.TransactionNo,
		PaymentTimestamp: paymentTime.Format(time.RFC3339),
	})
	if publishErr != nil {
		slog.ErrorContext(ctx, "failed to publish complete order message", traceIdAttr, slog.Any(constant.LogFieldErr, publishErr))
	}

	slog.InfoContext(ctx, "order settled", traceIdAttr, slog.Any(constant.LogFieldResponse, order.OrderNo))

	return paymentTime, nil
}

func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
