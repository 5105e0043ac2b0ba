package cron

import (
	"context"
	"log/slog"
	"time"

	"expo-booth/common"
	"expo-booth/common/constant"
	"expo-booth/common/currency"
	"expo-booth/common/vars"
	"expo-booth/model"
	"expo-booth/outbound/sqlgen"

	"github.com/spf13/viper"
)

// BoothCron keeps the in-memory booth availability snapshot in sync
// with the database. The HTTP listing endpoint serves from the
// snapshot, so a refresh interval bounds how stale listings can get.
type BoothCron struct {
	Cfg     *viper.Viper
	Querier *sqlgen.Queries
}

func (in BoothCron) Start(ctx context.Context) {
	refreshTicker := time.NewTicker(in.Cfg.GetDuration("cron.booth.refresh.interval"))
	defer refreshTicker.Stop()

	in.Refresh(ctx)

	slog.Info("booth cron started")

	for {
		select {
		case <-refreshTicker.C:
			in.Refresh(ctx)
		case <-ctx.Done():
			slog.Info("booth cron stopped")
			return
		}
	}
}

func (in BoothCron) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, in.Cfg.GetDuration("cron.booth.refresh.timeout"))
	defer cancel()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	slog.DebugContext(ctx, "refreshing booths", traceIdAttr)

	rows, err := in.Querier.FindActiveBoothsWithType(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to find booths", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return
	}

	booths := make(map[int64][]model.BoothResponse, len(rows))
	for _, row := range rows {
		booths[row.EventID] = append(booths[row.EventID], model.BoothResponse{
			Id:            row.ID,
			BoothNumber:   row.BoothNumber,
			Hall:          row.Hall,
			Size:          row.Size,
			BoothTypeName: row.BoothTypeName,
			UnitPrice:     row.UnitPrice,
			Currency:      currency.Currency(row.Currency),
			IsReserved:    row.IsReserved,
		})
	}

	vars.SetEventBooths(booths)

	slog.DebugContext(ctx, "booths refreshed successfully", traceIdAttr)
}
