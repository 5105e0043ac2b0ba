package settlement

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"expo-booth/common/constant"
	"expo-booth/common/currency"
	jetsteamMock "expo-booth/common/jetstream/mocks"
	"expo-booth/model"
	"expo-booth/outbound/bakong"
	"expo-booth/outbound/sqlgen"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SettlementTestSuite struct {
	suite.Suite

	Cfg *viper.Viper

	Querier *sqlgen.Queries
	PgxMock pgxmock.PgxPoolIface

	Publisher  *jetsteamMock.MockPublisher
	Settlement *Settlement
}

func (s *SettlementTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())

	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}

	s.PgxMock = pool
	s.Querier = sqlgen.New(pool)
	s.Publisher = jetsteamMock.NewMockPublisher(ctrl)

	s.Cfg = viper.New()
	s.Cfg.Set("order.max_quantity_per_booth", 1)

	gateway := bakong.NewClient(bakong.Config{
		AccountID:   "merchant@bank",
		AccountName: "Expo Organizer",
	}, nil)

	s.Settlement = New(s.Cfg, pool, s.Querier, s.Publisher, currency.NewConverter(4096), gateway)

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *SettlementTestSuite) TearDownTest() {
	s.PgxMock.Close()
}

func TestSettlementTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementTestSuite))
}

func (s *SettlementTestSuite) expectFindEvent(maxBooths int32, active bool) {
	s.PgxMock.ExpectQuery(`SELECT id, name, is_active, max_booths_per_order FROM events`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "is_active", "max_booths_per_order"}).
			AddRow(int64(1), "Expo 2026", active, maxBooths))
}

func (s *SettlementTestSuite) expectFindBooth(boothId int64, unitPrice float64, cur string, reserved bool) {
	s.PgxMock.ExpectQuery(`SELECT b.id, b.event_id, b.booth_number, b.hall, b.size, b.is_reserved`).
		WithArgs(boothId, int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "event_id", "booth_number", "hall", "size", "is_reserved",
			"booth_type_name", "unit_price", "currency",
		}).AddRow(boothId, int64(1), fmt.Sprintf("A-%02d", boothId), "Hall A", "3x3", reserved, "Standard", unitPrice, cur))
}

func (s *SettlementTestSuite) TestQuote() {
	tests := []struct {
		name          string
		req           model.QuoteOrderRequest
		setupMock     func()
		expectedTotal float64
		expectedErr   string
	}{
		{
			name: "success same currency",
			req: model.QuoteOrderRequest{
				EventId:  1,
				Currency: currency.USD,
				Booths:   []model.OrderLineRequest{{BoothId: 11, Quantity: 1}, {BoothId: 12, Quantity: 1}},
			},
			setupMock: func() {
				s.expectFindEvent(3, true)
				s.expectFindBooth(11, 1500, "USD", false)
				s.expectFindBooth(12, 2500, "USD", false)
			},
			expectedTotal: 4000,
		},
		{
			name: "success converts usd booth to khr",
			req: model.QuoteOrderRequest{
				EventId:  1,
				Currency: currency.KHR,
				Booths:   []model.OrderLineRequest{{BoothId: 11, Quantity: 1}},
			},
			setupMock: func() {
				s.expectFindEvent(3, true)
				s.expectFindBooth(11, 1500, "USD", false)
			},
			expectedTotal: 1500 * 4096,
		},
		{
			name: "event not found",
			req: model.QuoteOrderRequest{
				EventId:  1,
				Currency: currency.USD,
				Booths:   []model.OrderLineRequest{{BoothId: 11, Quantity: 1}},
			},
			setupMock: func() {
				s.PgxMock.ExpectQuery(`SELECT id, name, is_active, max_booths_per_order FROM events`).
					WithArgs(int64(1)).
					WillReturnError(pgx.ErrNoRows)
			},
			expectedErr: "event 1 not found",
		},
		{
			name: "event not active",
			req: model.QuoteOrderRequest{
				EventId:  1,
				Currency: currency.USD,
				Booths:   []model.OrderLineRequest{{BoothId: 11, Quantity: 1}},
			},
			setupMock: func() {
				s.expectFindEvent(3, false)
			},
			expectedErr: "event 1: is not active",
		},
		{
			name: "too many booths for event",
			req: model.QuoteOrderRequest{
				EventId:  1,
				Currency: currency.USD,
				Booths:   []model.OrderLineRequest{{BoothId: 11, Quantity: 1}, {BoothId: 12, Quantity: 1}},
			},
			setupMock: func() {
				s.expectFindEvent(1, true)
			},
			expectedErr: "exceeds max booths per order of 1",
		},
		{
			name: "quantity over cap",
			req: model.QuoteOrderRequest{
				EventId:  1,
				Currency: currency.USD,
				Booths:   []model.OrderLineRequest{{BoothId: 11, Quantity: 2}},
			},
			setupMock: func() {
				s.expectFindEvent(3, true)
			},
			expectedErr: "exceeds max quantity of 1",
		},
		{
			name: "duplicate booth",
			req: model.QuoteOrderRequest{
				EventId:  1,
				Currency: currency.USD,
				Booths:   []model.OrderLineRequest{{BoothId: 11, Quantity: 1}, {BoothId: 11, Quantity: 1}},
			},
			setupMock: func() {
				s.expectFindEvent(3, true)
				s.expectFindBooth(11, 1500, "USD", false)
			},
			expectedErr: "duplicated in order",
		},
		{
			name: "booth not found",
			req: model.QuoteOrderRequest{
				EventId:  1,
				Currency: currency.USD,
				Booths:   []model.OrderLineRequest{{BoothId: 99, Quantity: 1}},
			},
			setupMock: func() {
				s.expectFindEvent(3, true)
				s.PgxMock.ExpectQuery(`SELECT b.id, b.event_id, b.booth_number, b.hall, b.size, b.is_reserved`).
					WithArgs(int64(99), int64(1)).
					WillReturnError(pgx.ErrNoRows)
			},
			expectedErr: "booth 99 not found",
		},
		{
			name: "booth already reserved",
			req: model.QuoteOrderRequest{
				EventId:  1,
				Currency: currency.USD,
				Booths:   []model.OrderLineRequest{{BoothId: 11, Quantity: 1}},
			},
			setupMock: func() {
				s.expectFindEvent(3, true)
				s.expectFindBooth(11, 1500, "USD", true)
			},
			expectedErr: "already reserved",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.setupMock()

			resp, err := s.Settlement.Quote(context.Background(), tc.req)

			if tc.expectedErr != "" {
				s.Error(err)
				s.Contains(err.Error(), tc.expectedErr)
			} else {
				s.NoError(err)
				s.Equal(tc.expectedTotal, resp.TotalAmount)
				s.Equal(tc.req.Currency, resp.Currency)
				s.Len(resp.Booths, len(tc.req.Booths))
			}

			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}

func (s *SettlementTestSuite) TestCreateOrder() {
	req := model.CreateOrderRequest{
		EventId:     1,
		Currency:    currency.USD,
		FirstName:   "John",
		LastName:    "Doe",
		Email:       "john@example.com",
		PhoneNumber: "+85512345678",
		Booths:      []model.OrderLineRequest{{BoothId: 11, Quantity: 1}},
	}

	tests := []struct {
		name        string
		setupMock   func()
		expectedErr string
		assertResp  func(resp model.CreateOrderResponse)
	}{
		{
			name: "success",
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.expectFindEvent(3, true)
				s.expectFindBooth(11, 1500, "USD", false)
				s.PgxMock.ExpectQuery(`INSERT INTO serial_counters`).
					WithArgs(constant.SerialCounterOrder, constant.SerialPrefixOrder).
					WillReturnRows(pgxmock.NewRows([]string{"prefix", "value"}).AddRow("O", int64(1)))
				s.PgxMock.ExpectQuery(`INSERT INTO orders`).
					WithArgs(
						int64(1),           // event_id
						"O-00001",          // order_no
						pgxmock.AnyArg(),   // external_id
						"John",             // first_name
						"Doe",              // last_name
						"john@example.com", // email
						"+85512345678",     // phone_number
						pgtype.Text{},      // company_name
						pgtype.Text{},      // nationality
						pgtype.Text{},      // note
						"10.0.0.1",         // ip
						"USD",              // currency
						float64(1500),      // total_amount
					).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
				s.PgxMock.ExpectExec(`INSERT INTO order_items`).
					WithArgs(int64(7), int64(11), int32(1), float64(1500), float64(1500), "USD", float64(1500), "USD").
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				s.PgxMock.ExpectCommit()

				s.Publisher.EXPECT().Publish(
					gomock.Any(),
					constant.SubjectCreateOrder,
					gomock.Any(),
				).Return(nil, nil)
			},
			assertResp: func(resp model.CreateOrderResponse) {
				s.Equal(int64(7), resp.Id)
				s.Equal("O-00001", resp.OrderNo)
				s.NotEmpty(resp.ExternalId)
				s.Equal(float64(1500), resp.TotalAmount)
				s.Equal(model.OrderStatusPending, resp.Status)
			},
		},
		{
			name: "booth already reserved",
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.expectFindEvent(3, true)
				s.expectFindBooth(11, 1500, "USD", true)
				s.PgxMock.ExpectRollback().WillReturnError(nil)
			},
			expectedErr: "already reserved",
		},
		{
			name: "event not found",
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.PgxMock.ExpectQuery(`SELECT id, name, is_active, max_booths_per_order FROM events`).
					WithArgs(int64(1)).
					WillReturnError(pgx.ErrNoRows)
				s.PgxMock.ExpectRollback().WillReturnError(nil)
			},
			expectedErr: "event 1 not found",
		},
		{
			name: "serial allocation error",
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.expectFindEvent(3, true)
				s.expectFindBooth(11, 1500, "USD", false)
				s.PgxMock.ExpectQuery(`INSERT INTO serial_counters`).
					WithArgs(constant.SerialCounterOrder, constant.SerialPrefixOrder).
					WillReturnError(fmt.Errorf("database error"))
				s.PgxMock.ExpectRollback().WillReturnError(nil)
			},
			expectedErr: "database error",
		},
		{
			name: "commit error",
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.expectFindEvent(3, true)
				s.expectFindBooth(11, 1500, "USD", false)
				s.PgxMock.ExpectQuery(`INSERT INTO serial_counters`).
					WithArgs(constant.SerialCounterOrder, constant.SerialPrefixOrder).
					WillReturnRows(pgxmock.NewRows([]string{"prefix", "value"}).AddRow("O", int64(1)))
				s.PgxMock.ExpectQuery(`INSERT INTO orders`).
					WithArgs(
						int64(1), "O-00001", pgxmock.AnyArg(), "John", "Doe",
						"john@example.com", "+85512345678",
						pgtype.Text{}, pgtype.Text{}, pgtype.Text{},
						"10.0.0.1", "USD", float64(1500),
					).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
				s.PgxMock.ExpectExec(`INSERT INTO order_items`).
					WithArgs(int64(7), int64(11), int32(1), float64(1500), float64(1500), "USD", float64(1500), "USD").
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				s.PgxMock.ExpectCommit().WillReturnError(fmt.Errorf("commit error"))
				s.PgxMock.ExpectRollback().WillReturnError(nil)
			},
			expectedErr: "commit error",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.setupMock()

			resp, err := s.Settlement.CreateOrder(context.Background(), req, "10.0.0.1")

			if tc.expectedErr != "" {
				s.Error(err)
				s.Contains(err.Error(), tc.expectedErr)
			} else {
				s.NoError(err)
				tc.assertResp(resp)
			}

			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}

// The quoted total and the created order's total must be computed the
// same way, so the amount the buyer saw is the amount they are charged.
func (s *SettlementTestSuite) TestQuoteMatchesCreateOrderTotal() {
	booths := []model.OrderLineRequest{{BoothId: 11, Quantity: 1}, {BoothId: 12, Quantity: 1}}

	s.expectFindEvent(3, true)
	s.expectFindBooth(11, 1500, "USD", false)
	s.expectFindBooth(12, 2500, "USD", false)

	quote, err := s.Settlement.Quote(context.Background(), model.QuoteOrderRequest{
		EventId: 1, Currency: currency.KHR, Booths: booths,
	})
	s.NoError(err)

	s.PgxMock.ExpectBegin()
	s.expectFindEvent(3, true)
	s.expectFindBooth(11, 1500, "USD", false)
	s.expectFindBooth(12, 2500, "USD", false)
	s.PgxMock.ExpectQuery(`INSERT INTO serial_counters`).
		WithArgs(constant.SerialCounterOrder, constant.SerialPrefixOrder).
		WillReturnRows(pgxmock.NewRows([]string{"prefix", "value"}).AddRow("O", int64(2)))
	s.PgxMock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(
			int64(1), "O-00002", pgxmock.AnyArg(), "John", "Doe",
			"john@example.com", "+85512345678",
			pgtype.Text{}, pgtype.Text{}, pgtype.Text{},
			"10.0.0.1", "KHR", quote.TotalAmount,
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(8)))
	s.PgxMock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(int64(8), int64(11), int32(1), float64(1500*4096), float64(1500*4096), "KHR", float64(1500), "USD").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.PgxMock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(int64(8), int64(12), int32(1), float64(2500*4096), float64(2500*4096), "KHR", float64(2500), "USD").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.PgxMock.ExpectCommit()

	s.Publisher.EXPECT().Publish(gomock.Any(), constant.SubjectCreateOrder, gomock.Any()).Return(nil, nil)

	resp, err := s.Settlement.CreateOrder(context.Background(), model.CreateOrderRequest{
		EventId:     1,
		Currency:    currency.KHR,
		FirstName:   "John",
		LastName:    "Doe",
		Email:       "john@example.com",
		PhoneNumber: "+85512345678",
		Booths:      booths,
	}, "10.0.0.1")

	s.NoError(err)
	s.Equal(quote.TotalAmount, resp.TotalAmount)
	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func (s *SettlementTestSuite) TestCreatePayment() {
	orderRow := func(status string) *pgxmock.Rows {
		return pgxmock.NewRows([]string{
			"id", "event_id", "order_no", "external_id", "first_name", "last_name",
			"email", "phone_number", "currency", "total_amount", "status", "payment_status", "completed_at",
		}).AddRow(
			int64(9), int64(1), "O-00001", "01HZX3", "John", "Doe",
			"john@example.com", "+85512345678", "USD", float64(1500), status, "pending", pgtype.Timestamp{},
		)
	}

	tests := []struct {
		name        string
		setupMock   func()
		expectedErr string
	}{
		{
			name: "success",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`SELECT id, event_id, order_no, external_id`).
					WithArgs(int64(9)).
					WillReturnRows(orderRow("pending"))
				s.PgxMock.ExpectBegin()
				s.PgxMock.ExpectQuery(`INSERT INTO serial_counters`).
					WithArgs(constant.SerialCounterTransaction, constant.SerialPrefixTransaction).
					WillReturnRows(pgxmock.NewRows([]string{"prefix", "value"}).AddRow("T", int64(1)))
				s.PgxMock.ExpectQuery(`INSERT INTO transactions`).
					WithArgs(
						int64(9),         // order_id
						"T-00001",        // transaction_no
						float64(1500),    // amount
						"USD",            // currency
						pgxmock.AnyArg(), // qr_code
						pgxmock.AnyArg(), // md5
						pgtype.Text{},    // note
						"10.0.0.1",       // ip
					).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
				s.PgxMock.ExpectCommit()
			},
		},
		{
			name: "order not found",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`SELECT id, event_id, order_no, external_id`).
					WithArgs(int64(9)).
					WillReturnError(pgx.ErrNoRows)
			},
			expectedErr: "order 9 not found",
		},
		{
			name: "order not pending",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`SELECT id, event_id, order_no, external_id`).
					WithArgs(int64(9)).
					WillReturnRows(orderRow("completed"))
			},
			expectedErr: "order O-00001: is not pending",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.setupMock()

			resp, err := s.Settlement.CreatePayment(context.Background(), model.CreatePaymentRequest{OrderId: 9}, "10.0.0.1")

			if tc.expectedErr != "" {
				s.Error(err)
				s.Contains(err.Error(), tc.expectedErr)
			} else {
				s.NoError(err)
				s.Equal(int64(3), resp.Id)
				s.Equal("T-00001", resp.TransactionNo)
				s.NotEmpty(resp.QRCode)
				s.Len(resp.Md5, 32)
				s.Equal(float64(1500), resp.Amount)
				s.Equal(currency.USD, resp.Currency)
			}

			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}

func (s *SettlementTestSuite) TestCompleteOrder() {
	ackTime := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	ack := &bakong.AccountTransactionData{
		Hash:               "abc123",
		FromAccountID:      "buyer@bank",
		ToAccountID:        "merchant@bank",
		Currency:           "USD",
		Amount:             1500,
		AcknowledgedDateMs: ackTime.UnixMilli(),
	}

	trx := sqlgen.FindTransactionByIdRow{
		ID:            3,
		OrderID:       9,
		TransactionNo: "T-00001",
		Amount:        1500,
		Currency:      "USD",
		Status:        "pending",
	}

	expectedTs := pgtype.Timestamp{Time: ackTime, Valid: true}

	orderRows := func() *pgxmock.Rows {
		return pgxmock.NewRows([]string{
			"id", "event_id", "order_no", "external_id", "first_name", "last_name",
			"email", "phone_number", "currency", "total_amount", "status", "payment_status", "completed_at",
		}).AddRow(
			int64(9), int64(1), "O-00001", "01HZX3", "John", "Doe",
			"john@example.com", "+85512345678", "USD", float64(1500), "pending", "pending", pgtype.Timestamp{},
		)
	}

	itemRows := func() *pgxmock.Rows {
		return pgxmock.NewRows([]string{"booth_id", "quantity", "unit_price", "total_price", "currency"}).
			AddRow(int64(11), int32(1), float64(700), float64(700), "USD").
			AddRow(int64(12), int32(1), float64(800), float64(800), "USD")
	}

	tests := []struct {
		name        string
		setupMock   func()
		expectedErr error
		errContains string
	}{
		{
			name: "success reserves every booth",
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.PgxMock.ExpectExec(`UPDATE transactions`).
					WithArgs(int64(3), pgxmock.AnyArg(), expectedTs).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				s.PgxMock.ExpectQuery(`SELECT id, event_id, order_no, external_id`).
					WithArgs(int64(9)).
					WillReturnRows(orderRows())
				s.PgxMock.ExpectQuery(`SELECT booth_id, quantity, unit_price, total_price, currency`).
					WithArgs(int64(9)).
					WillReturnRows(itemRows())
				s.PgxMock.ExpectExec(`UPDATE booths`).
					WithArgs(int64(11), pgtype.Int8{Int64: 9, Valid: true}).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				s.PgxMock.ExpectExec(`UPDATE booths`).
					WithArgs(int64(12), pgtype.Int8{Int64: 9, Valid: true}).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				s.PgxMock.ExpectExec(`UPDATE orders`).
					WithArgs(int64(9), expectedTs).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				s.PgxMock.ExpectCommit()

				s.Publisher.EXPECT().Publish(
					gomock.Any(),
					constant.SubjectCompleteOrder,
					gomock.Any(),
				).Return(nil, nil)
			},
		},
		{
			name: "already settled is not retried",
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.PgxMock.ExpectExec(`UPDATE transactions`).
					WithArgs(int64(3), pgxmock.AnyArg(), expectedTs).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
				s.PgxMock.ExpectRollback().WillReturnError(nil)
			},
			expectedErr: ErrAlreadySettled,
		},
		{
			name: "booth conflict aborts whole unit",
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.PgxMock.ExpectExec(`UPDATE transactions`).
					WithArgs(int64(3), pgxmock.AnyArg(), expectedTs).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				s.PgxMock.ExpectQuery(`SELECT id, event_id, order_no, external_id`).
					WithArgs(int64(9)).
					WillReturnRows(orderRows())
				s.PgxMock.ExpectQuery(`SELECT booth_id, quantity, unit_price, total_price, currency`).
					WithArgs(int64(9)).
					WillReturnRows(itemRows())
				s.PgxMock.ExpectExec(`UPDATE booths`).
					WithArgs(int64(11), pgtype.Int8{Int64: 9, Valid: true}).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				s.PgxMock.ExpectExec(`UPDATE booths`).
					WithArgs(int64(12), pgtype.Int8{Int64: 9, Valid: true}).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
				s.PgxMock.ExpectRollback().WillReturnError(nil)
			},
			errContains: "booth 12 already reserved by another order, order O-00001 cannot settle",
		},
		{
			name: "order not pending",
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.PgxMock.ExpectExec(`UPDATE transactions`).
					WithArgs(int64(3), pgxmock.AnyArg(), expectedTs).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				s.PgxMock.ExpectQuery(`SELECT id, event_id, order_no, external_id`).
					WithArgs(int64(9)).
					WillReturnRows(orderRows())
				s.PgxMock.ExpectQuery(`SELECT booth_id, quantity, unit_price, total_price, currency`).
					WithArgs(int64(9)).
					WillReturnRows(itemRows())
				s.PgxMock.ExpectExec(`UPDATE booths`).
					WithArgs(int64(11), pgtype.Int8{Int64: 9, Valid: true}).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				s.PgxMock.ExpectExec(`UPDATE booths`).
					WithArgs(int64(12), pgtype.Int8{Int64: 9, Valid: true}).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				s.PgxMock.ExpectExec(`UPDATE orders`).
					WithArgs(int64(9), expectedTs).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
				s.PgxMock.ExpectRollback().WillReturnError(nil)
			},
			errContains: "order O-00001: is not pending",
		},
		{
			name: "commit error",
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.PgxMock.ExpectExec(`UPDATE transactions`).
					WithArgs(int64(3), pgxmock.AnyArg(), expectedTs).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				s.PgxMock.ExpectQuery(`SELECT id, event_id, order_no, external_id`).
					WithArgs(int64(9)).
					WillReturnRows(orderRows())
				s.PgxMock.ExpectQuery(`SELECT booth_id, quantity, unit_price, total_price, currency`).
					WithArgs(int64(9)).
					WillReturnRows(itemRows())
				s.PgxMock.ExpectExec(`UPDATE booths`).
					WithArgs(int64(11), pgtype.Int8{Int64: 9, Valid: true}).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				s.PgxMock.ExpectExec(`UPDATE booths`).
					WithArgs(int64(12), pgtype.Int8{Int64: 9, Valid: true}).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				s.PgxMock.ExpectExec(`UPDATE orders`).
					WithArgs(int64(9), expectedTs).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				s.PgxMock.ExpectCommit().WillReturnError(fmt.Errorf("commit error"))
				s.PgxMock.ExpectRollback().WillReturnError(nil)
			},
			errContains: "commit error",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.setupMock()

			paymentTime, err := s.Settlement.CompleteOrder(context.Background(), trx, ack)

			switch {
			case tc.expectedErr != nil:
				s.ErrorIs(err, tc.expectedErr)
			case tc.errContains != "":
				s.Error(err)
				s.Contains(err.Error(), tc.errContains)
			default:
				s.NoError(err)
				s.Equal(ackTime, paymentTime)
			}

			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}
