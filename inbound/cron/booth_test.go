package cron

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"expo-booth/common/vars"
	"expo-booth/model"
	"expo-booth/outbound/sqlgen"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
)

type BoothCronTestSuite struct {
	suite.Suite

	Querier *sqlgen.Queries
	PgxMock pgxmock.PgxPoolIface

	Cfg *viper.Viper
}

func (s *BoothCronTestSuite) SetupTest() {
	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}

	s.PgxMock = pool
	s.Querier = sqlgen.New(pool)

	s.Cfg = viper.New()
	s.Cfg.Set("cron.booth.refresh.interval", "5s")
	s.Cfg.Set("cron.booth.refresh.timeout", "10s")

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *BoothCronTestSuite) TearDownTest() {
	s.PgxMock.Close()

	vars.SetEventBooths(nil)
}

func TestBoothCronTestSuite(t *testing.T) {
	suite.Run(t, new(BoothCronTestSuite))
}

func (s *BoothCronTestSuite) boothRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "event_id", "booth_number", "hall", "size", "is_reserved",
		"booth_type_name", "unit_price", "currency",
	}).
		AddRow(int64(11), int64(1), "A-01", "Hall A", "3x3", false, "Standard", float64(1500), "USD").
		AddRow(int64(12), int64(1), "A-02", "Hall A", "3x3", true, "Premium", float64(2500), "USD").
		AddRow(int64(21), int64(2), "B-01", "Hall B", "6x3", false, "Corner", float64(4000), "USD")
}

func (s *BoothCronTestSuite) TestRefresh() {
	tests := []struct {
		name      string
		setupMock func()
		check     func()
	}{
		{
			name: "database error keeps previous snapshot",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`SELECT b.id, b.event_id, b.booth_number`).
					WillReturnError(fmt.Errorf("database error"))
			},
			check: func() {
				s.Nil(vars.GetEventBooths(1))
			},
		},
		{
			name: "success groups booths by event",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`SELECT b.id, b.event_id, b.booth_number`).
					WillReturnRows(s.boothRows())
			},
			check: func() {
				eventOne := vars.GetEventBooths(1)
				s.Len(eventOne, 2)
				s.Equal("A-01", eventOne[0].BoothNumber)
				s.False(eventOne[0].IsReserved)
				s.True(eventOne[1].IsReserved)

				eventTwo := vars.GetEventBooths(2)
				s.Len(eventTwo, 1)
				s.Equal(model.BoothResponse{
					Id:            21,
					BoothNumber:   "B-01",
					Hall:          "Hall B",
					Size:          "6x3",
					BoothTypeName: "Corner",
					UnitPrice:     4000,
					Currency:      "USD",
					IsReserved:    false,
				}, eventTwo[0])

				s.Nil(vars.GetEventBooths(99))
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			vars.SetEventBooths(nil)

			boothCron := BoothCron{
				Cfg:     s.Cfg,
				Querier: s.Querier,
			}

			tc.setupMock()

			boothCron.Refresh(context.Background())

			tc.check()

			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}

func (s *BoothCronTestSuite) TestStart() {
	s.PgxMock.ExpectQuery(`SELECT b.id, b.event_id, b.booth_number`).
		WillReturnRows(s.boothRows())

	s.Cfg.Set("cron.booth.refresh.interval", "200ms")

	boothCron := BoothCron{
		Cfg:     s.Cfg,
		Querier: s.Querier,
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		boothCron.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)

	s.Len(vars.GetEventBooths(1), 2)

	s.PgxMock.ExpectQuery(`SELECT b.id, b.event_id, b.booth_number`).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "event_id", "booth_number", "hall", "size", "is_reserved",
			"booth_type_name", "unit_price", "currency",
		}).AddRow(int64(11), int64(1), "A-01", "Hall A", "3x3", true, "Standard", float64(1500), "USD"))

	time.Sleep(250 * time.Millisecond)

	eventOne := vars.GetEventBooths(1)
	s.Len(eventOne, 1)
	s.True(eventOne[0].IsReserved)

	cancel()

	time.Sleep(100 * time.Millisecond)

	s.NoError(s.PgxMock.ExpectationsWereMet())
}
