package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"expo-booth/common"
	"expo-booth/common/constant"
	"expo-booth/common/currency"
	"expo-booth/common/errs"
	"expo-booth/common/otel"
	"expo-booth/model"
	"expo-booth/outbound/bakong"
	"expo-booth/outbound/sqlgen"
	"expo-booth/settlement"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
)

type PaymentHttp struct {
	Settlement *settlement.Settlement
	Querier    *sqlgen.Queries
	Gateway    *bakong.Client
	Validate   *validator.Validate
}

func RegisterPaymentHttp(
	mux *http.ServeMux,
	stl *settlement.Settlement,
	querier *sqlgen.Queries,
	gateway *bakong.Client,
	validate *validator.Validate,
) *PaymentHttp {
	in := &PaymentHttp{
		Settlement: stl,
		Querier:    querier,
		Gateway:    gateway,
		Validate:   validate,
	}

	mux.HandleFunc("POST /api/payments/qrcode", in.qrcode)
	mux.HandleFunc("POST /api/payments/status", in.status)

	return in
}

func (in PaymentHttp) qrcode(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "PaymentHttp.qrcode")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "create payment receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	resp, err := in.Settlement.CreatePayment(ctx, req, clientIP(r))
	if err != nil {
		slog.ErrorContext(ctx, "failed to create payment", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "insert transaction success", traceIdAttr, slog.Any(constant.LogFieldResponse, resp.TransactionNo))

	writeJSONResponse(w, http.StatusOK, resp)
}

// status is the settlement trigger. It checks the gateway for the
// transaction's KHQR md5 and, when the payment is acknowledged, runs
// the commit-or-abort settlement unit. Polling an already settled
// transaction returns its stored state without touching the gateway.
func (in PaymentHttp) status(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "PaymentHttp.status")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "payment status receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	trx, err := in.Querier.FindTransactionById(ctx, req.TransactionId)
	if err == pgx.ErrNoRows {
		writeErrorResponse(w, &errs.NotFoundError{Entity: "transaction", Ref: strconv.FormatInt(req.TransactionId, 10)})
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to find transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if trx.Status != string(model.TransactionStatusPending) {
		writeJSONResponse(w, http.StatusOK, buildPaymentStatusResponse(trx))
		return
	}

	ack, err := in.Gateway.CheckTransaction(ctx, trx.Md5)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check transaction on gateway", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if ack == nil {
		slog.DebugContext(ctx, "payment not settled yet", traceIdAttr)
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Payment not settled"})
		return
	}

	paymentTime, err := in.Settlement.CompleteOrder(ctx, trx, ack)
	if errors.Is(err, settlement.ErrAlreadySettled) {
		settled, findErr := in.Querier.FindTransactionById(ctx, req.TransactionId)
		if findErr != nil {
			slog.ErrorContext(ctx, "failed to re-read settled transaction", traceIdAttr, slog.Any(constant.LogFieldErr, findErr))
			writeErrorResponse(w, findErr)
			return
		}

		writeJSONResponse(w, http.StatusOK, buildPaymentStatusResponse(settled))
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to settle order", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "payment settled", traceIdAttr, slog.Any(constant.LogFieldResponse, trx.TransactionNo))

	writeJSONResponse(w, http.StatusOK, model.PaymentStatusResponse{
		OrderId:          trx.OrderID,
		TransactionNo:    trx.TransactionNo,
		Amount:           trx.Amount,
		Currency:         currency.Currency(trx.Currency),
		Status:           model.TransactionStatusCompleted,
		PaymentTimestamp: paymentTime.Format(time.RFC3339),
	})
}

func buildPaymentStatusResponse(trx sqlgen.FindTransactionByIdRow) model.PaymentStatusResponse {
	resp := model.PaymentStatusResponse{
		OrderId:       trx.OrderID,
		TransactionNo: trx.TransactionNo,
		Amount:        trx.Amount,
		Currency:      currency.Currency(trx.Currency),
		Status:        model.TransactionStatus(trx.Status),
	}

	if trx.PaymentTimestamp.Valid {
		resp.PaymentTimestamp = trx.PaymentTimestamp.Time.Format(time.RFC3339)
	}

	return resp
}
