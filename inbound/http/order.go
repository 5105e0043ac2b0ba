package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"expo-booth/common"
	"expo-booth/common/constant"
	"expo-booth/common/errs"
	"expo-booth/common/metrics"
	"expo-booth/common/otel"
	"expo-booth/model"
	"expo-booth/outbound/sqlgen"
	"expo-booth/settlement"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"golang.org/x/text/message"
)

type OrderHttp struct {
	Settlement        *settlement.Settlement
	Querier           *sqlgen.Queries
	Cache             *redis.Client
	Publisher         jetstream.Publisher
	Validate          *validator.Validate
	CurrencyFormatter *message.Printer

	TimeNow func() time.Time

	sizeBulkCancel int32
	expiredAfter   time.Duration
}

func RegisterOrderHttp(
	mux *http.ServeMux,
	cfg *viper.Viper,
	stl *settlement.Settlement,
	querier *sqlgen.Queries,
	cache *redis.Client,
	publisher jetstream.Publisher,
	validate *validator.Validate,
	currencyFormatter *message.Printer,
) *OrderHttp {
	in := &OrderHttp{
		Settlement:        stl,
		Querier:           querier,
		Cache:             cache,
		Publisher:         publisher,
		Validate:          validate,
		CurrencyFormatter: currencyFormatter,
		TimeNow:           time.Now,

		sizeBulkCancel: cfg.GetInt32("order.bulk_cancel_size"),
		expiredAfter:   cfg.GetDuration("order.expired_after"),
	}

	mux.HandleFunc("POST /api/orders/quote", in.quote)
	mux.HandleFunc("POST /api/orders", in.create)
	mux.HandleFunc("POST /api/orders/cancel", in.cancel)

	return in
}

func (in OrderHttp) quote(w http.ResponseWriter, r *http.Request) {
	var req model.QuoteOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "OrderHttp.quote")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "quote order receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	resp, err := in.Settlement.Quote(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to quote order", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

func (in OrderHttp) create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "OrderHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "create order receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	emailLock, err := in.Cache.SetNX(ctx, fmt.Sprintf(constant.OrderEmailLock, req.Email), true, constant.OrderEmailLockDefaultTTL).Result()
	if err != nil {
		slog.ErrorContext(ctx, "failed to set email lock", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if !emailLock {
		slog.DebugContext(ctx, "email already ordered", traceIdAttr)
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "Email already ordered"})
		return
	}

	emailExist, err := in.Querier.FindOrderByEmailAndStatusPending(ctx, req.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to find order by email", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if emailExist {
		slog.DebugContext(ctx, "email already ordered", traceIdAttr)
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "Email already ordered"})
		return
	}

	resp, err := in.Settlement.CreateOrder(ctx, req, clientIP(r))
	if err != nil {
		slog.ErrorContext(ctx, "failed to create order", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "insert order success", traceIdAttr, slog.Any(constant.LogFieldResponse, resp.OrderNo))

	writeJSONResponse(w, http.StatusOK, resp)
}

// cancel sweeps pending orders older than the configured expiry, fails
// their pending transactions and emails the buyers. Booths were never
// reserved for these orders, so there is nothing to release.
func (in OrderHttp) cancel(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "OrderHttp.cancel")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "cancel order receive request", traceIdAttr)

	now := in.TimeNow()
	cancelledOrders, err := in.Querier.BulkCancelOrders(ctx, sqlgen.BulkCancelOrdersParams{
		Limit:     in.sizeBulkCancel,
		CreatedAt: pgtype.Timestamp{Time: now.Add(-in.expiredAfter), Valid: true},
		UpdatedAt: pgtype.Timestamp{Time: now, Valid: true},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to cancel orders", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if len(cancelledOrders) == 0 {
		slog.DebugContext(ctx, "no cancelable orders", traceIdAttr)
		writeJSONResponse(w, http.StatusOK, nil)
		return
	}

	orderIds := make([]int64, 0, len(cancelledOrders))
	for _, order := range cancelledOrders {
		orderIds = append(orderIds, order.ID)
	}

	err = in.Querier.FailTransactionsByOrderIds(ctx, orderIds)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fail pending transactions", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	for _, order := range cancelledOrders {
		err = common.PublishMessage(ctx, in.Publisher, constant.SubjectCancelOrder, model.CancelOrderEventMessage{
			OrderNo:     order.OrderNo,
			Name:        order.FirstName + " " + order.LastName,
			Email:       order.Email,
			TotalAmount: order.TotalAmount,
			Currency:    order.Currency,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to publish cancel order message", traceIdAttr, slog.Any(constant.LogFieldErr, err))
			writeErrorResponse(w, err)
			return
		}
	}

	metrics.OrdersCancelled.Add(float64(len(cancelledOrders)))

	slog.InfoContext(ctx, "cancel order success", slog.Any(constant.LogFieldResponse, len(cancelledOrders)), traceIdAttr)

	writeJSONResponse(w, http.StatusOK, nil)
}
