package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"backend/internal/app/ds"
	"backend/internal/app/mail"
	"backend/internal/app/panel"
	"backend/internal/app/payment"
	"backend/internal/app/repository"

	"github.com/google/go-cmp/cmp"
)

// fakeStore хранилище в памяти для тестов жизненного цикла
type fakeStore struct {
	locations map[uint]*ds.Location
	gameData  map[uint]*ds.GameData
	packages  map[uint]*ds.GamePackage
	servers   map[uint]*ds.GameServer
	orders    map[uint]*ds.GameServerOrder
	users     map[uint]*ds.User

	nextOrderID  uint
	nextServerID uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		locations: map[uint]*ds.Location{},
		gameData:  map[uint]*ds.GameData{},
		packages:  map[uint]*ds.GamePackage{},
		servers:   map[uint]*ds.GameServer{},
		orders:    map[uint]*ds.GameServerOrder{},
		users:     map[uint]*ds.User{},
	}
}

func (f *fakeStore) GetEnabledLocation(id uint) (*ds.Location, error) {
	loc, ok := f.locations[id]
	if !ok {
		return nil, repository.ErrLocationNotFound
	}
	return loc, nil
}

func (f *fakeStore) GetGameData(id uint) (*ds.GameData, error) {
	gd, ok := f.gameData[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return gd, nil
}

func (f *fakeStore) GetEnabledPackage(id uint) (*ds.GamePackage, error) {
	pkg, ok := f.packages[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return pkg, nil
}

func (f *fakeStore) GetServerByID(id uint) (*ds.GameServer, error) {
	srv, ok := f.servers[id]
	if !ok {
		return nil, repository.ErrServerNotFound
	}
	return srv, nil
}

func (f *fakeStore) CreateOrder(order *ds.GameServerOrder) error {
	f.nextOrderID++
	order.ID = f.nextOrderID
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeStore) CreateFreeOrderAtomic(order *ds.GameServerOrder, maxFree int) error {
	count := 0
	for _, o := range f.orders {
		if o.UserID == order.UserID && o.Type == ds.OrderTypeFreeServer && !ds.IsTerminalOrderStatus(o.Status) {
			count++
		}
	}
	if count >= maxFree {
		return repository.ErrFreeLimitReached
	}
	return f.CreateOrder(order)
}

func (f *fakeStore) AttachPaymentSession(orderID uint, sessionID string) error {
	order, ok := f.orders[orderID]
	if !ok || order.Status != ds.OrderStatusPending {
		return repository.ErrWrongOrderStatus
	}
	order.StripeSessionID = &sessionID
	return nil
}

func (f *fakeStore) GetOrderBySessionID(sessionID string) (*ds.GameServerOrder, error) {
	for _, o := range f.orders {
		if o.StripeSessionID != nil && *o.StripeSessionID == sessionID {
			// эмуляция Preload("User") / Preload("CreationGameData")
			if u, ok := f.users[o.UserID]; ok {
				o.User = *u
			}
			if gd, ok := f.gameData[o.CreationGameDataID]; ok {
				o.CreationGameData = *gd
			}
			return o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (f *fakeStore) MarkOrderPaid(orderID uint, paidAt time.Time) (bool, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return false, repository.ErrOrderNotFound
	}
	if order.Status != ds.OrderStatusPending {
		return false, nil
	}
	order.Status = ds.OrderStatusPaid
	order.PaidAt = &paidAt
	return true, nil
}

func (f *fakeStore) MarkOrderActive(orderID, serverID uint) error {
	order, ok := f.orders[orderID]
	if !ok || order.Status != ds.OrderStatusPaid {
		return repository.ErrWrongOrderStatus
	}
	order.Status = ds.OrderStatusActive
	order.ServerID = &serverID
	return nil
}

func (f *fakeStore) MarkOrderCreationFailed(orderID uint) error {
	order, ok := f.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.Status = ds.OrderStatusCreationFailed
	return nil
}

func (f *fakeStore) CreateServer(server *ds.GameServer) error {
	f.nextServerID++
	server.ID = f.nextServerID
	copied := *server
	f.servers[server.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateServerBuild(id uint, cpuPercent, ramMb, diskMb int, expiresAt time.Time) error {
	srv, ok := f.servers[id]
	if !ok {
		return repository.ErrServerNotFound
	}
	srv.CPUPercent = cpuPercent
	srv.RAMMb = ramMb
	srv.DiskMb = diskMb
	srv.ExpiresAt = expiresAt
	return nil
}

func (f *fakeStore) MarkServerPaid(id uint, expiresAt time.Time) error {
	srv, ok := f.servers[id]
	if !ok {
		return repository.ErrServerNotFound
	}
	srv.FreeServer = false
	srv.ExpiresAt = expiresAt
	return nil
}

type fakePayments struct {
	calls   []payment.CreateSessionParams
	failing bool
}

func (f *fakePayments) CreateCheckoutSession(_ context.Context, params payment.CreateSessionParams) (*payment.Session, error) {
	f.calls = append(f.calls, params)
	if f.failing {
		return nil, errors.New("provider down")
	}
	return &payment.Session{
		ID:           fmt.Sprintf("cs_%d", len(f.calls)),
		ClientSecret: "secret",
	}, nil
}

type fakePanel struct {
	created      []panel.CreateServerParams
	buildUpdates []panel.UpdateBuildParams
	failing      bool
}

func (f *fakePanel) CreateServer(_ context.Context, params panel.CreateServerParams) (*panel.Server, error) {
	if f.failing {
		return nil, &panel.Error{StatusCode: 502, Detail: "no free nodes"}
	}
	f.created = append(f.created, params)
	return &panel.Server{Identifier: fmt.Sprintf("srv%d", len(f.created)), Status: "installing"}, nil
}

func (f *fakePanel) UpdateServerBuild(_ context.Context, _ string, params panel.UpdateBuildParams) error {
	if f.failing {
		return &panel.Error{StatusCode: 502, Detail: "no free nodes"}
	}
	f.buildUpdates = append(f.buildUpdates, params)
	return nil
}

type fakeMailer struct {
	sent []mail.Invoice
}

func (f *fakeMailer) SendBookingConfirmation(_ string, inv mail.Invoice) error {
	f.sent = append(f.sent, inv)
	return nil
}

type fixture struct {
	store    *fakeStore
	payments *fakePayments
	panel    *fakePanel
	mailer   *fakeMailer
	svc      *Service
	user     *ds.User
	now      time.Time
}

func newFixture() *fixture {
	store := newFakeStore()

	store.locations[1] = &ds.Location{
		ID:      1,
		Name:    "Frankfurt",
		Enabled: true,
		CPU:     ds.CPUPrice{ID: 1, LocationID: 1, PricePerCoreCents: 500},
		RAM:     ds.RAMPrice{ID: 1, LocationID: 1, PricePerGbCents: 200},
	}
	store.gameData[1] = &ds.GameData{
		ID:          1,
		GameID:      1,
		Name:        "Paper 1.21",
		DockerImage: "itzg/minecraft-server:java21",
		Game:        ds.Game{ID: 1, Name: "Minecraft", Slug: "minecraft", Enabled: true},
	}

	f := &fixture{
		store:    store,
		payments: &fakePayments{},
		panel:    &fakePanel{},
		mailer:   &fakeMailer{},
		user:     &ds.User{ID: 7, Login: "steve", Email: "steve@example.com"},
		now:      time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	store.users[f.user.ID] = f.user

	limits := FreeTierLimits{MaxServers: 1, CPUPercent: 50, RAMMb: 1024, DiskMb: 2048, DurationDays: 14}
	f.svc = NewService(store, f.payments, f.panel, f.mailer, limits,
		"https://example.com/ok", "https://example.com/cancel")
	f.svc.now = func() time.Time { return f.now }
	return f
}

func validNewRequest() Request {
	return Request{
		Type: ds.OrderTypeNew,
		Hardware: ds.HardwareConfig{
			CPUPercent:   100,
			RAMMb:        2048,
			DiskMb:       10240,
			DurationDays: 30,
			LocationID:   1,
		},
		GameDataID: 1,
		GameConfig: []byte(`{"version":"1.21","eula":true}`),
	}
}

func TestCreateOrderNew(t *testing.T) {
	f := newFixture()

	res, err := f.svc.CreateOrder(context.Background(), f.user, validNewRequest())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if res.Order.Status != ds.OrderStatusPending {
		t.Errorf("status = %s, want PENDING", res.Order.Status)
	}
	// 1 ядро * 500 + 2 GB * 200 за полный 30-дневный период
	if res.Order.PriceCents != 900 {
		t.Errorf("price = %d, want 900", res.Order.PriceCents)
	}
	if res.SessionID == "" || res.ClientSecret == "" {
		t.Errorf("payment session not returned: %+v", res)
	}

	if len(f.payments.calls) != 1 {
		t.Fatalf("payment calls = %d, want 1", len(f.payments.calls))
	}
	call := f.payments.calls[0]
	if call.AmountCents != 900 {
		t.Errorf("session amount = %d, want 900", call.AmountCents)
	}
	if call.IdempotencyKey != res.Order.IdempotencyKey.String() {
		t.Errorf("session idempotency key %q != order key %q", call.IdempotencyKey, res.Order.IdempotencyKey)
	}

	stored := f.store.orders[res.Order.ID]
	if stored.StripeSessionID == nil || *stored.StripeSessionID != res.SessionID {
		t.Errorf("session id not attached to stored order")
	}
}

func TestCreateOrderRejectionWritesNothing(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{
			name:    "нулевой CPU",
			mutate:  func(r *Request) { r.Hardware.CPUPercent = 0 },
			wantErr: ds.ErrInvalidCPU,
		},
		{
			name:    "отрицательный срок",
			mutate:  func(r *Request) { r.Hardware.DurationDays = -1 },
			wantErr: ds.ErrInvalidDuration,
		},
		{
			name:    "несуществующая локация",
			mutate:  func(r *Request) { r.Hardware.LocationID = 99 },
			wantErr: repository.ErrLocationNotFound,
		},
		{
			name:   "неизвестное поле в конфиге игры",
			mutate: func(r *Request) { r.GameConfig = []byte(`{"version":"1.21","eula":true,"warp":1}`) },
		},
		{
			name:    "неизвестный тип заказа",
			mutate:  func(r *Request) { r.Type = "RENEW" },
			wantErr: ErrUnknownOrderType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validNewRequest()
			tt.mutate(&req)

			_, err := f.svc.CreateOrder(context.Background(), f.user, req)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}

			// Отклонённый запрос не оставляет ни заказа, ни платёжных вызовов
			if len(f.store.orders) != 0 {
				t.Errorf("orders written on rejection: %d", len(f.store.orders))
			}
			if len(f.payments.calls) != 0 {
				t.Errorf("payment called on rejection")
			}
		})
	}
}

func TestCreateOrderPaymentFailureLeavesPendingWithStableKey(t *testing.T) {
	f := newFixture()
	f.payments.failing = true

	_, err := f.svc.CreateOrder(context.Background(), f.user, validNewRequest())
	if !errors.Is(err, ErrPaymentUnavailable) {
		t.Fatalf("err = %v, want ErrPaymentUnavailable", err)
	}

	if len(f.store.orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(f.store.orders))
	}
	order := f.store.orders[1]
	if order.Status != ds.OrderStatusPending {
		t.Errorf("status = %s, want PENDING", order.Status)
	}
	firstKey := f.payments.calls[0].IdempotencyKey

	// Ретрай по существующему заказу: тот же ключ, цена не пересчитана
	f.payments.failing = false
	res, err := f.svc.EnsurePaymentSession(context.Background(), order)
	if err != nil {
		t.Fatalf("EnsurePaymentSession: %v", err)
	}

	retry := f.payments.calls[1]
	if retry.IdempotencyKey != firstKey {
		t.Errorf("retry key %q != original key %q", retry.IdempotencyKey, firstKey)
	}
	if retry.AmountCents != order.PriceCents {
		t.Errorf("retry amount = %d, want stored price %d", retry.AmountCents, order.PriceCents)
	}
	if res.SessionID == "" {
		t.Error("retry returned no session")
	}
}

func TestEnsurePaymentSessionRejectsNonPending(t *testing.T) {
	f := newFixture()
	order := &ds.GameServerOrder{ID: 1, Status: ds.OrderStatusPaid}

	_, err := f.svc.EnsurePaymentSession(context.Background(), order)
	if !errors.Is(err, ErrSessionExists) {
		t.Errorf("err = %v, want ErrSessionExists", err)
	}
}

func TestCreateFreeServer(t *testing.T) {
	f := newFixture()

	req := Request{
		Type:       ds.OrderTypeFreeServer,
		Hardware:   ds.HardwareConfig{LocationID: 1},
		GameDataID: 1,
		GameConfig: []byte(`{"version":"1.21","eula":true}`),
		ServerName: "my-first-server",
	}

	res, err := f.svc.CreateOrder(context.Background(), f.user, req)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if res.Order.PriceCents != 0 {
		t.Errorf("free order price = %d", res.Order.PriceCents)
	}
	if res.SessionID != "" || len(f.payments.calls) != 0 {
		t.Error("free order must not touch the payment provider")
	}

	stored := f.store.orders[res.Order.ID]
	if stored.Status != ds.OrderStatusActive {
		t.Errorf("status = %s, want ACTIVE", stored.Status)
	}
	// Железо берётся из лимитов бесплатного тарифа, не из запроса
	if stored.CPUPercent != 50 || stored.RAMMb != 1024 {
		t.Errorf("free tier hardware not applied: %d%% / %d MB", stored.CPUPercent, stored.RAMMb)
	}

	if len(f.store.servers) != 1 {
		t.Fatalf("servers = %d, want 1", len(f.store.servers))
	}
	server := f.store.servers[1]
	if !server.FreeServer {
		t.Error("server not marked as free")
	}
	if server.Name != "my-first-server" {
		t.Errorf("server name = %q", server.Name)
	}
	wantExpiry := f.now.AddDate(0, 0, 14)
	if !server.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expires_at = %v, want %v", server.ExpiresAt, wantExpiry)
	}

	if len(f.mailer.sent) != 1 {
		t.Fatalf("confirmations sent = %d, want 1", len(f.mailer.sent))
	}
}

func TestCreateFreeServerLimit(t *testing.T) {
	f := newFixture()
	req := Request{
		Type:       ds.OrderTypeFreeServer,
		Hardware:   ds.HardwareConfig{LocationID: 1},
		GameDataID: 1,
		GameConfig: []byte(`{"version":"1.21","eula":true}`),
	}

	// Первый бесплатный сервер проходит (лимит 1)
	if _, err := f.svc.CreateOrder(context.Background(), f.user, req); err != nil {
		t.Fatalf("first free order: %v", err)
	}

	// Второй упирается в лимит
	_, err := f.svc.CreateOrder(context.Background(), f.user, req)
	if !errors.Is(err, repository.ErrFreeLimitReached) {
		t.Fatalf("err = %v, want ErrFreeLimitReached", err)
	}

	// У другого пользователя свой лимит
	other := &ds.User{ID: 8, Login: "alex", Email: "alex@example.com"}
	if _, err := f.svc.CreateOrder(context.Background(), other, req); err != nil {
		t.Errorf("other user free order: %v", err)
	}
}

func TestCreateFreeServerProvisioningFailure(t *testing.T) {
	f := newFixture()
	f.panel.failing = true

	req := Request{
		Type:       ds.OrderTypeFreeServer,
		Hardware:   ds.HardwareConfig{LocationID: 1},
		GameDataID: 1,
		GameConfig: []byte(`{"version":"1.21","eula":true}`),
	}

	_, err := f.svc.CreateOrder(context.Background(), f.user, req)
	if !errors.Is(err, ErrProvisioningFailed) {
		t.Fatalf("err = %v, want ErrProvisioningFailed", err)
	}

	order := f.store.orders[1]
	if order.Status != ds.OrderStatusCreationFailed {
		t.Errorf("status = %s, want CREATION_FAILED", order.Status)
	}
	if len(f.store.servers) != 0 {
		t.Error("server row written despite panel failure")
	}

	// Провалившийся заказ терминален и не занимает бесплатный лимит
	f.panel.failing = false
	if _, err := f.svc.CreateOrder(context.Background(), f.user, req); err != nil {
		t.Errorf("retry after failed provisioning: %v", err)
	}
}

func TestHandlePaymentSuccess(t *testing.T) {
	f := newFixture()

	res, err := f.svc.CreateOrder(context.Background(), f.user, validNewRequest())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := f.svc.HandlePaymentSuccess(context.Background(), res.SessionID); err != nil {
		t.Fatalf("HandlePaymentSuccess: %v", err)
	}

	order := f.store.orders[res.Order.ID]
	if order.Status != ds.OrderStatusActive {
		t.Errorf("status = %s, want ACTIVE", order.Status)
	}
	if order.PaidAt == nil || !order.PaidAt.Equal(f.now) {
		t.Errorf("paid_at = %v, want %v", order.PaidAt, f.now)
	}

	if len(f.panel.created) != 1 {
		t.Fatalf("panel creations = %d, want 1", len(f.panel.created))
	}
	created := f.panel.created[0]
	want := panel.CreateServerParams{
		Name:         "minecraft-1",
		UserEmail:    "steve@example.com",
		LocationName: "Frankfurt",
		DockerImage:  "itzg/minecraft-server:java21",
		CPUPercent:   100,
		RAMMb:        2048,
		DiskMb:       10240,
		Environment:  map[string]string{"GAME_CONFIG": `{"version":"1.21","eula":true}`},
	}
	if diff := cmp.Diff(want, created); diff != "" {
		t.Errorf("panel params mismatch (-want +got):\n%s", diff)
	}

	if len(f.mailer.sent) != 1 {
		t.Fatalf("confirmations sent = %d", len(f.mailer.sent))
	}
	if f.mailer.sent[0].PriceCents != 900 {
		t.Errorf("invoice price = %d, want 900", f.mailer.sent[0].PriceCents)
	}
}

func TestHandlePaymentSuccessIdempotent(t *testing.T) {
	f := newFixture()

	res, err := f.svc.CreateOrder(context.Background(), f.user, validNewRequest())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := f.svc.HandlePaymentSuccess(context.Background(), res.SessionID); err != nil {
		t.Fatalf("first webhook: %v", err)
	}
	// Повторная доставка того же события - no-op
	if err := f.svc.HandlePaymentSuccess(context.Background(), res.SessionID); err != nil {
		t.Fatalf("second webhook: %v", err)
	}

	if len(f.panel.created) != 1 {
		t.Errorf("panel creations = %d, want 1", len(f.panel.created))
	}
	if len(f.store.servers) != 1 {
		t.Errorf("servers = %d, want 1", len(f.store.servers))
	}
	if len(f.mailer.sent) != 1 {
		t.Errorf("confirmations = %d, want 1", len(f.mailer.sent))
	}
}

func TestCreateUpgrade(t *testing.T) {
	f := newFixture()

	expiresAt := f.now.AddDate(0, 0, 15)
	f.store.servers[3] = &ds.GameServer{
		ID: 3, UserID: 7, PanelIdentifier: "srvX", Name: "old",
		LocationID: 1, GameDataID: 1,
		CPUPercent: 100, RAMMb: 2048, DiskMb: 10240,
		Status: ds.ServerStatusRunning, ExpiresAt: expiresAt,
	}

	req := Request{
		Type:     ds.OrderTypeUpgrade,
		ServerID: 3,
		Hardware: ds.HardwareConfig{CPUPercent: 200, RAMMb: 4096, DiskMb: 20480, DurationDays: 15, LocationID: 1},
	}

	res, err := f.svc.CreateOrder(context.Background(), f.user, req)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// Разница конфигураций за оставшиеся 15 дней:
	// старая 900/период, новая 1800/период, дельта 900 * 15/30 = 450
	if res.Order.PriceCents != 450 {
		t.Errorf("upgrade price = %d, want 450", res.Order.PriceCents)
	}

	if err := f.svc.HandlePaymentSuccess(context.Background(), res.SessionID); err != nil {
		t.Fatalf("HandlePaymentSuccess: %v", err)
	}

	if len(f.panel.buildUpdates) != 1 {
		t.Fatalf("build updates = %d, want 1", len(f.panel.buildUpdates))
	}
	srv := f.store.servers[3]
	if srv.CPUPercent != 200 || srv.RAMMb != 4096 || srv.DiskMb != 20480 {
		t.Errorf("server build not updated: %+v", srv)
	}
	// Срок не продлевался (duration == remaining), дата окончания прежняя
	if !srv.ExpiresAt.Equal(expiresAt) {
		t.Errorf("expires_at changed: %v, want %v", srv.ExpiresAt, expiresAt)
	}
}

func TestCreateUpgradeForeignServer(t *testing.T) {
	f := newFixture()
	f.store.servers[3] = &ds.GameServer{ID: 3, UserID: 99, LocationID: 1, GameDataID: 1, ExpiresAt: f.now.AddDate(0, 0, 10)}

	req := Request{
		Type:     ds.OrderTypeUpgrade,
		ServerID: 3,
		Hardware: ds.HardwareConfig{CPUPercent: 200, RAMMb: 4096, DiskMb: 20480, DurationDays: 10, LocationID: 1},
	}

	_, err := f.svc.CreateOrder(context.Background(), f.user, req)
	if !errors.Is(err, ErrNotYourServer) {
		t.Errorf("err = %v, want ErrNotYourServer", err)
	}
	if len(f.store.orders) != 0 {
		t.Error("order written for foreign server")
	}
}

func TestCreateToPayed(t *testing.T) {
	f := newFixture()

	f.store.servers[4] = &ds.GameServer{
		ID: 4, UserID: 7, PanelIdentifier: "srvY", Name: "free-one",
		LocationID: 1, GameDataID: 1,
		CPUPercent: 100, RAMMb: 2048, DiskMb: 10240,
		FreeServer: true, Status: ds.ServerStatusRunning,
		ExpiresAt: f.now.AddDate(0, 0, 3),
	}

	req := Request{Type: ds.OrderTypeToPayed, ServerID: 4, DurationDays: 30}

	res, err := f.svc.CreateOrder(context.Background(), f.user, req)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	// Полная цена текущего железа за запрошенный срок
	if res.Order.PriceCents != 900 {
		t.Errorf("price = %d, want 900", res.Order.PriceCents)
	}

	if err := f.svc.HandlePaymentSuccess(context.Background(), res.SessionID); err != nil {
		t.Fatalf("HandlePaymentSuccess: %v", err)
	}

	srv := f.store.servers[4]
	if srv.FreeServer {
		t.Error("server still marked free after TO_PAYED")
	}
	wantExpiry := f.now.AddDate(0, 0, 30)
	if !srv.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expires_at = %v, want %v", srv.ExpiresAt, wantExpiry)
	}
}

func TestCreateToPayedRejectsPaidServer(t *testing.T) {
	f := newFixture()
	f.store.servers[4] = &ds.GameServer{ID: 4, UserID: 7, LocationID: 1, GameDataID: 1, FreeServer: false}

	_, err := f.svc.CreateOrder(context.Background(), f.user, Request{Type: ds.OrderTypeToPayed, ServerID: 4, DurationDays: 30})
	if !errors.Is(err, ErrServerNotFree) {
		t.Errorf("err = %v, want ErrServerNotFree", err)
	}
}

func TestCreateFromPackage(t *testing.T) {
	f := newFixture()

	f.store.packages[2] = &ds.GamePackage{
		ID: 2, GameID: 1, LocationID: 1, Name: "Starter",
		CPUPercent: 100, RAMMb: 2048, DiskMb: 5120, DurationDays: 30, Enabled: true,
		Game:     ds.Game{ID: 1, Slug: "minecraft"},
		Location: *f.store.locations[1],
	}

	req := Request{
		Type:       ds.OrderTypePackage,
		PackageID:  2,
		GameDataID: 1,
		GameConfig: []byte(`{"version":"1.21","eula":true}`),
	}

	res, err := f.svc.CreateOrder(context.Background(), f.user, req)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// Железо и цена берутся из пакета
	if res.Order.CPUPercent != 100 || res.Order.RAMMb != 2048 || res.Order.DiskMb != 5120 {
		t.Errorf("package hardware not applied: %+v", res.Order)
	}
	if res.Order.PriceCents != 900 {
		t.Errorf("package price = %d, want 900", res.Order.PriceCents)
	}
}

func TestCreateFromPackageWrongGameData(t *testing.T) {
	f := newFixture()

	f.store.packages[2] = &ds.GamePackage{
		ID: 2, GameID: 55, LocationID: 1,
		CPUPercent: 100, RAMMb: 2048, DiskMb: 5120, DurationDays: 30, Enabled: true,
		Location: *f.store.locations[1],
	}

	_, err := f.svc.CreateOrder(context.Background(), f.user, Request{
		Type:       ds.OrderTypePackage,
		PackageID:  2,
		GameDataID: 1, // принадлежит игре 1, не 55
		GameConfig: []byte(`{"version":"1.21","eula":true}`),
	})
	if err == nil {
		t.Fatal("expected mismatch error")
	}
	if len(f.store.orders) != 0 {
		t.Error("order written despite mismatch")
	}
}
