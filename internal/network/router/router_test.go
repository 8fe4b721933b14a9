package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/denmor86/ya-laundry/internal/client"
	"github.com/denmor86/ya-laundry/internal/lifecycle"
	"github.com/denmor86/ya-laundry/internal/logger"
	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/denmor86/ya-laundry/internal/services"
	"github.com/denmor86/ya-laundry/internal/services/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

const (
	testSecret  = "test-secret"
	customerID  = "7f0c2a9e-3a1d-4c55-9b0e-5b1b3f1d2a10"
	staffID     = "2b6f4d1e-8c3a-4e7b-a1d2-9f0e6c5b4a31"
	courierID   = "c1d2e3f4-a5b6-4c7d-8e9f-0a1b2c3d4e5f"
	orderNumber = "LND-20240115-0042"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

type testServer struct {
	orders   *mocks.MockOrdersService
	identity *services.Identity
	server   *httptest.Server
}

func newTestServer(t *testing.T, pingErr error) *testServer {
	t.Helper()
	logger.Set(zaptest.NewLogger(t).Sugar())

	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrdersService(ctrl)
	identity := services.NewIdentity(testSecret)

	server := httptest.NewServer(NewRouter(identity, orders, fakePinger{err: pingErr}).HandleRouter())
	t.Cleanup(server.Close)
	return &testServer{orders: orders, identity: identity, server: server}
}

func (ts *testServer) token(t *testing.T, id string, role models.Role) string {
	t.Helper()
	token, err := ts.identity.GenerateJWT(models.Actor{ID: id, Role: role})
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, ts.server.URL+path, bytes.NewBufferString(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ts.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func decodeError(t *testing.T, body []byte) models.ErrorResponse {
	t.Helper()
	var response models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &response))
	return response
}

func testOrder(status models.OrderStatus) *models.OrderData {
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return &models.OrderData{
		Number:              orderNumber,
		CustomerID:          customerID,
		PickupAddressID:     1,
		DeliveryAddressID:   1,
		Status:              status,
		PaymentStatus:       models.PaymentStatusPending,
		PickupScheduledAt:   created.Add(24 * time.Hour),
		DeliveryScheduledAt: created.Add(72 * time.Hour),
		EstimatedTotal:      decimal.NewFromInt(48000),
		FinalTotal:          decimal.Zero,
		DeliveryFee:         decimal.NewFromInt(5000),
		CreatedAt:           created,
		UpdatedAt:           created,
		Items: []models.OrderItemData{
			{ID: 1, OrderNumber: orderNumber, ServiceID: 1, EstimatedQuantity: decimal.NewFromInt(6), PricePerUnit: decimal.NewFromInt(8000), EstimatedSubtotal: decimal.NewFromInt(48000)},
		},
		History: []models.StatusHistoryData{
			{ID: 1, OrderNumber: orderNumber, Status: models.OrderStatusPending, UpdatedBy: customerID, CreatedAt: created},
		},
	}
}

func TestRouter_Authentication(t *testing.T) {
	ts := newTestServer(t, nil)

	t.Run("No token #1", func(t *testing.T) {
		resp, _ := ts.do(t, http.MethodGet, "/api/orders", "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Foreign secret #2", func(t *testing.T) {
		token, err := services.NewIdentity("other-secret").GenerateJWT(models.Actor{ID: customerID, Role: models.RoleCustomer})
		require.NoError(t, err)
		resp, _ := ts.do(t, http.MethodGet, "/api/orders", token, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown role #3", func(t *testing.T) {
		_, token, err := ts.identity.GetTokenAuth().Encode(map[string]interface{}{
			services.ClaimSubject: customerID,
			services.ClaimRole:    "manager",
		})
		require.NoError(t, err)
		resp, body := ts.do(t, http.MethodGet, "/api/orders", token, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid_token", decodeError(t, body).Reason)
	})
}

func TestRouter_HealthCheck(t *testing.T) {
	resp, _ := newTestServer(t, nil).do(t, http.MethodGet, "/health-check", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = newTestServer(t, errors.New("connection refused")).do(t, http.MethodGet, "/health-check", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRouter_CreateOrder(t *testing.T) {
	body := `{"pickup_address_id":1,"delivery_address_id":1,"pickup_scheduled_at":"2024-01-16T10:30:00Z",` +
		`"delivery_scheduled_at":"2024-01-18T10:30:00Z","items":[{"service_id":1,"quantity":"6"}]}`

	testCases := []struct {
		TestName       string
		Body           string
		SetupMocks     func(m *mocks.MockOrdersService)
		ExpectedStatus int
		ExpectedReason string
	}{
		{
			TestName: "Success #1",
			Body:     body,
			SetupMocks: func(m *mocks.MockOrdersService) {
				m.EXPECT().CreateOrder(gomock.Any(), models.Actor{ID: customerID, Role: models.RoleCustomer}, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ models.Actor, draft models.OrderDraft) (*models.OrderData, error) {
						assert.Equal(t, int64(1), draft.PickupAddressID)
						require.Len(t, draft.Items, 1)
						assert.True(t, draft.Items[0].Quantity.Equal(decimal.NewFromInt(6)))
						return testOrder(models.OrderStatusPending), nil
					})
			},
			ExpectedStatus: http.StatusCreated,
		},
		{
			TestName:       "Error. Invalid body #2",
			Body:           `{"items":`,
			SetupMocks:     func(m *mocks.MockOrdersService) {},
			ExpectedStatus: http.StatusBadRequest,
			ExpectedReason: "invalid_body",
		},
		{
			TestName: "Error. Below minimum #3",
			Body:     body,
			SetupMocks: func(m *mocks.MockOrdersService) {
				m.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: service 1", lifecycle.ErrQuantityBelowMinimum))
			},
			ExpectedStatus: http.StatusUnprocessableEntity,
			ExpectedReason: "quantity_below_minimum",
		},
		{
			TestName: "Error. Unknown service #4",
			Body:     body,
			SetupMocks: func(m *mocks.MockOrdersService) {
				m.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: 1", lifecycle.ErrUnknownService))
			},
			ExpectedStatus: http.StatusNotFound,
			ExpectedReason: "unknown_service",
		},
		{
			TestName: "Error. Catalog unavailable #5",
			Body:     body,
			SetupMocks: func(m *mocks.MockOrdersService) {
				m.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, client.ErrServiceUnavailable)
			},
			ExpectedStatus: http.StatusServiceUnavailable,
			ExpectedReason: "catalog_unavailable",
		},
		{
			TestName: "Error. Database failure #6",
			Body:     body,
			SetupMocks: func(m *mocks.MockOrdersService) {
				m.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			ExpectedStatus: http.StatusInternalServerError,
			ExpectedReason: "internal_error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			ts := newTestServer(t, nil)
			tc.SetupMocks(ts.orders)

			resp, respBody := ts.do(t, http.MethodPost, "/api/orders", ts.token(t, customerID, models.RoleCustomer), tc.Body)
			require.Equal(t, tc.ExpectedStatus, resp.StatusCode)
			if tc.ExpectedReason != "" {
				assert.Equal(t, tc.ExpectedReason, decodeError(t, respBody).Reason)
				return
			}
			var order models.OrderResponse
			require.NoError(t, json.Unmarshal(respBody, &order))
			assert.Equal(t, orderNumber, order.Number)
			assert.Equal(t, "pending", order.Status)
			assert.True(t, order.EstimatedTotal.Equal(decimal.NewFromInt(48000)))
			assert.Len(t, order.History, 1)
		})
	}
}

func TestRouter_GetOrders(t *testing.T) {
	staff := models.Actor{ID: staffID, Role: models.RoleStaff}

	testCases := []struct {
		TestName       string
		Query          string
		SetupMocks     func(m *mocks.MockOrdersService)
		ExpectedStatus int
		ExpectedCount  int
	}{
		{
			TestName: "Success. Default page #1",
			SetupMocks: func(m *mocks.MockOrdersService) {
				m.EXPECT().GetOrders(gomock.Any(), staff, gomock.Nil(), 1).
					Return([]models.OrderData{*testOrder(models.OrderStatusPending), *testOrder(models.OrderStatusReady)}, nil)
			},
			ExpectedStatus: http.StatusOK,
			ExpectedCount:  2,
		},
		{
			TestName: "Success. Status filter and page #2",
			Query:    "?status=pending,ready&status=delivered&page=2",
			SetupMocks: func(m *mocks.MockOrdersService) {
				m.EXPECT().GetOrders(gomock.Any(), staff,
					[]models.OrderStatus{models.OrderStatusPending, models.OrderStatusReady, models.OrderStatusDelivered}, 2).
					Return([]models.OrderData{*testOrder(models.OrderStatusReady)}, nil)
			},
			ExpectedStatus: http.StatusOK,
			ExpectedCount:  1,
		},
		{
			TestName: "Success. Empty page #3",
			Query:    "?page=5",
			SetupMocks: func(m *mocks.MockOrdersService) {
				m.EXPECT().GetOrders(gomock.Any(), staff, gomock.Nil(), 5).Return(nil, nil)
			},
			ExpectedStatus: http.StatusNoContent,
		},
		{
			TestName:       "Error. Unknown status #4",
			Query:          "?status=lost",
			SetupMocks:     func(m *mocks.MockOrdersService) {},
			ExpectedStatus: http.StatusUnprocessableEntity,
		},
		{
			TestName:       "Error. Invalid page #5",
			Query:          "?page=zero",
			SetupMocks:     func(m *mocks.MockOrdersService) {},
			ExpectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			ts := newTestServer(t, nil)
			tc.SetupMocks(ts.orders)

			resp, body := ts.do(t, http.MethodGet, "/api/orders"+tc.Query, ts.token(t, staffID, models.RoleStaff), "")
			require.Equal(t, tc.ExpectedStatus, resp.StatusCode)
			if tc.ExpectedCount == 0 {
				return
			}
			var orders []models.OrderResponse
			require.NoError(t, json.Unmarshal(body, &orders))
			assert.Len(t, orders, tc.ExpectedCount)
		})
	}
}

func TestRouter_GetOrder(t *testing.T) {
	ts := newTestServer(t, nil)
	token := ts.token(t, customerID, models.RoleCustomer)

	ts.orders.EXPECT().GetOrder(gomock.Any(), gomock.Any(), orderNumber).Return(testOrder(models.OrderStatusPending), nil)
	resp, body := ts.do(t, http.MethodGet, "/api/orders/"+orderNumber, token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var order models.OrderResponse
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, customerID, order.CustomerID)
	assert.Len(t, order.Items, 1)
	assert.Empty(t, order.AllowedTransitions)

	// персонал видит, куда может перевести заказ
	ts.orders.EXPECT().GetOrder(gomock.Any(), gomock.Any(), orderNumber).Return(testOrder(models.OrderStatusPending), nil)
	resp, body = ts.do(t, http.MethodGet, "/api/orders/"+orderNumber, ts.token(t, staffID, models.RoleStaff), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	order = models.OrderResponse{}
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, []string{"confirmed", "cancelled"}, order.AllowedTransitions)

	// чужой курьер переходов не видит
	assigned := testOrder(models.OrderStatusPickupAssigned)
	other := staffID
	assigned.AssignedCourierID = &other
	ts.orders.EXPECT().GetOrder(gomock.Any(), gomock.Any(), orderNumber).Return(assigned, nil)
	resp, body = ts.do(t, http.MethodGet, "/api/orders/"+orderNumber, ts.token(t, courierID, models.RoleCourier), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	order = models.OrderResponse{}
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Empty(t, order.AllowedTransitions)

	// номер неверного формата не доходит до сервиса
	resp, body = ts.do(t, http.MethodGet, "/api/orders/ORD-1", token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "order_not_found", decodeError(t, body).Reason)

	ts.orders.EXPECT().GetOrder(gomock.Any(), gomock.Any(), orderNumber).
		Return(nil, fmt.Errorf("%w: %s", lifecycle.ErrOrderAccessDenied, orderNumber))
	resp, body = ts.do(t, http.MethodGet, "/api/orders/"+orderNumber, token, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "order_access_denied", decodeError(t, body).Reason)
}

func TestRouter_UpdateStatus(t *testing.T) {
	path := "/api/orders/" + orderNumber + "/status"

	testCases := []struct {
		TestName        string
		Role            models.Role
		ActorID         string
		Body            string
		SetupMocks      func(m *mocks.MockOrdersService)
		ExpectedStatus  int
		ExpectedError   models.ErrorResponse
		ExpectedAllowed []string
	}{
		{
			TestName: "Success. Courier assigned #1",
			Role:     models.RoleStaff,
			ActorID:  staffID,
			Body:     `{"status":"pickup_assigned","assigned_courier_id":"` + courierID + `","notes":"morning slot"}`,
			SetupMocks: func(m *mocks.MockOrdersService) {
				m.EXPECT().UpdateStatus(gomock.Any(), models.Actor{ID: staffID, Role: models.RoleStaff}, orderNumber, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ models.Actor, _ string, req models.TransitionRequest) (*models.OrderData, error) {
						assert.Equal(t, models.OrderStatusPickupAssigned, req.Status)
						require.NotNil(t, req.AssignedCourierID)
						assert.Equal(t, courierID, *req.AssignedCourierID)
						require.NotNil(t, req.Notes)
						assert.Equal(t, "morning slot", *req.Notes)
						order := testOrder(models.OrderStatusPickupAssigned)
						order.AssignedCourierID = req.AssignedCourierID
						return order, nil
					})
			},
			ExpectedStatus:  http.StatusOK,
			ExpectedAllowed: []string{"cancelled"},
		},
		{
			TestName: "Success. Actual quantities #2",
			Role:     models.RoleStaff,
			ActorID:  staffID,
			Body:     `{"status":"in_process","actual_quantities":[{"order_item_id":1,"quantity":"5.5"}]}`,
			SetupMocks: func(m *mocks.MockOrdersService) {
				m.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), orderNumber, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ models.Actor, _ string, req models.TransitionRequest) (*models.OrderData, error) {
						require.Len(t, req.ActualQuantities, 1)
						assert.Equal(t, int64(1), req.ActualQuantities[0].OrderItemID)
						assert.True(t, req.ActualQuantities[0].Quantity.Equal(decimal.RequireFromString("5.5")))
						return testOrder(models.OrderStatusInProcess), nil
					})
			},
			ExpectedStatus:  http.StatusOK,
			ExpectedAllowed: []string{"ready", "cancelled"},
		},
		{
			TestName: "Error. Illegal transition #3",
			Role:     models.RoleStaff,
			ActorID:  staffID,
			Body:     `{"status":"delivered"}`,
			SetupMocks: func(m *mocks.MockOrdersService) {
				m.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), orderNumber, gomock.Any()).
					Return(nil, fmt.Errorf("%w: pending -> delivered", lifecycle.ErrIllegalTransition))
			},
			ExpectedStatus: http.StatusConflict,
			ExpectedError:  models.ErrorResponse{Error: "illegal_transition", Reason: "illegal_transition", Field: "status"},
		},
		{
			TestName: "Error. Customer confirms #4",
			Role:     models.RoleCustomer,
			ActorID:  customerID,
			Body:     `{"status":"confirmed"}`,
			SetupMocks: func(m *mocks.MockOrdersService) {
				m.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), orderNumber, gomock.Any()).
					Return(nil, fmt.Errorf("%w: customer", lifecycle.ErrUnauthorizedRole))
			},
			ExpectedStatus: http.StatusForbidden,
			ExpectedError:  models.ErrorResponse{Error: "authorization", Reason: "unauthorized_role"},
		},
		{
			TestName: "Error. Missing courier #5",
			Role:     models.RoleStaff,
			ActorID:  staffID,
			Body:     `{"status":"pickup_assigned"}`,
			SetupMocks: func(m *mocks.MockOrdersService) {
				m.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), orderNumber, gomock.Any()).Return(nil, lifecycle.ErrMissingCourier)
			},
			ExpectedStatus: http.StatusUnprocessableEntity,
			ExpectedError:  models.ErrorResponse{Error: "validation", Reason: "missing_courier", Field: "assigned_courier_id"},
		},
		{
			TestName: "Error. Order not found #6",
			Role:     models.RoleAdmin,
			ActorID:  staffID,
			Body:     `{"status":"confirmed"}`,
			SetupMocks: func(m *mocks.MockOrdersService) {
				m.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), orderNumber, gomock.Any()).Return(nil, lifecycle.ErrOrderNotFound)
			},
			ExpectedStatus: http.StatusNotFound,
			ExpectedError:  models.ErrorResponse{Error: "not_found", Reason: "order_not_found"},
		},
		{
			TestName:       "Error. Invalid body #7",
			Role:           models.RoleStaff,
			ActorID:        staffID,
			Body:           `status=confirmed`,
			SetupMocks:     func(m *mocks.MockOrdersService) {},
			ExpectedStatus: http.StatusBadRequest,
			ExpectedError:  models.ErrorResponse{Error: "bad_request", Reason: "invalid_body"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			ts := newTestServer(t, nil)
			tc.SetupMocks(ts.orders)

			resp, body := ts.do(t, http.MethodPatch, path, ts.token(t, tc.ActorID, tc.Role), tc.Body)
			require.Equal(t, tc.ExpectedStatus, resp.StatusCode)
			if tc.ExpectedStatus != http.StatusOK {
				assert.Equal(t, tc.ExpectedError, decodeError(t, body))
				return
			}
			var order models.OrderResponse
			require.NoError(t, json.Unmarshal(body, &order))
			assert.Equal(t, orderNumber, order.Number)
			assert.Equal(t, tc.ExpectedAllowed, order.AllowedTransitions)
		})
	}
}

func TestRouter_AddReview(t *testing.T) {
	ts := newTestServer(t, nil)
	token := ts.token(t, customerID, models.RoleCustomer)
	path := "/api/orders/" + orderNumber + "/review"

	comment := "Crisp shirts"
	ts.orders.EXPECT().AddReview(gomock.Any(), models.Actor{ID: customerID, Role: models.RoleCustomer}, orderNumber, 5, gomock.Any()).
		Return(&models.ReviewData{ID: 1, OrderNumber: orderNumber, CustomerID: customerID, Rating: 5, Comment: &comment,
			CreatedAt: time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)}, nil)

	resp, body := ts.do(t, http.MethodPost, path, token, `{"rating":5,"comment":"Crisp shirts"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var review models.ReviewResponse
	require.NoError(t, json.Unmarshal(body, &review))
	assert.Equal(t, models.ReviewResponse{OrderNumber: orderNumber, Rating: 5, Comment: &comment, CreatedAt: "2024-01-20T09:00:00Z"}, review)

	ts.orders.EXPECT().AddReview(gomock.Any(), gomock.Any(), orderNumber, 5, gomock.Any()).
		Return(nil, fmt.Errorf("%w: order %s", lifecycle.ErrReviewExists, orderNumber))
	resp, body = ts.do(t, http.MethodPost, path, token, `{"rating":5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "review_exists", decodeError(t, body).Reason)
}

func TestRouter_Dashboard(t *testing.T) {
	ts := newTestServer(t, nil)

	pickup, delivery, today := int64(2), int64(1), int64(3)
	courier := courierID
	assigned := testOrder(models.OrderStatusPickupAssigned)
	assigned.AssignedCourierID = &courier
	ts.orders.EXPECT().GetDashboard(gomock.Any(), models.Actor{ID: courierID, Role: models.RoleCourier}).
		Return(&models.Dashboard{
			Role:           models.RoleCourier,
			Stats:          models.DashboardStats{PendingPickup: &pickup, PendingDelivery: &delivery, CompletedToday: &today},
			AssignedOrders: []models.OrderData{*assigned},
		}, nil)

	resp, body := ts.do(t, http.MethodGet, "/api/dashboard", ts.token(t, courierID, models.RoleCourier), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dashboard models.DashboardResponse
	require.NoError(t, json.Unmarshal(body, &dashboard))
	assert.Equal(t, models.RoleCourier, dashboard.Role)
	assert.Equal(t, models.DashboardStats{PendingPickup: &pickup, PendingDelivery: &delivery, CompletedToday: &today}, dashboard.Stats)
	require.Len(t, dashboard.AssignedOrders, 1)
	assert.Equal(t, orderNumber, dashboard.AssignedOrders[0].Number)
	assert.Empty(t, dashboard.RecentOrders)
	assert.Empty(t, dashboard.AvailableCouriers)

	ts.orders.EXPECT().GetDashboard(gomock.Any(), models.Actor{ID: staffID, Role: models.RoleStaff}).
		Return(&models.Dashboard{
			Role:              models.RoleStaff,
			AvailableCouriers: []models.UserData{{UserID: courierID, Name: "Ivan", Role: models.RoleCourier, IsActive: true}},
		}, nil)
	resp, body = ts.do(t, http.MethodGet, "/api/dashboard", ts.token(t, staffID, models.RoleStaff), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"role":"staff","stats":{},"available_couriers":[{"id":"`+courierID+`","name":"Ivan"}]}`, string(body))
}

func TestRouter_LifecycleEventsNotLogged(t *testing.T) {
	ts := newTestServer(t, nil)
	core, logs := observer.New(zap.InfoLevel)
	logger.Set(zap.New(core).Sugar())

	ts.orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).Return(testOrder(models.OrderStatusPending), nil)
	resp, _ := ts.do(t, http.MethodPost, "/api/orders", ts.token(t, customerID, models.RoleCustomer),
		`{"pickup_address_id":1,"delivery_address_id":1,"items":[{"service_id":1,"quantity":"6"}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	ts.orders.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), orderNumber, gomock.Any()).Return(testOrder(models.OrderStatusConfirmed), nil)
	resp, _ = ts.do(t, http.MethodPatch, "/api/orders/"+orderNumber+"/status", ts.token(t, staffID, models.RoleStaff), `{"status":"confirmed"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// события заказа пишет сервис
	assert.Zero(t, logs.FilterMessage("order created").Len())
	assert.Zero(t, logs.FilterMessage("order status changed").Len())
}
