// Package checkout реализует жизненный цикл заказа: валидация запроса,
// расчёт цены, запись заказа, платёжная сессия и провижининг.
//
// Переходы статусов:
//
//	PENDING -> PAID -> {ACTIVE, EXPIRED}
//	любой   -> CREATION_FAILED (провал провижининга)
//	PENDING -> DELETED (отмена пользователем)
//
// Цена считается один раз при создании заказа и фиксируется в строке;
// ретраи и webhook работают только с уже сохранённой суммой.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend/internal/app/ds"
	"backend/internal/app/gameconfig"
	"backend/internal/app/mail"
	"backend/internal/app/panel"
	"backend/internal/app/payment"
	"backend/internal/app/pricing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownOrderType   = errors.New("неизвестный тип заказа")
	ErrNotYourServer      = errors.New("сервер принадлежит другому пользователю")
	ErrServerNotFree      = errors.New("сервер уже на платном тарифе")
	ErrPaymentUnavailable = errors.New("платёжный сервис временно недоступен")
	ErrProvisioningFailed = errors.New("не удалось создать сервер, обратитесь в поддержку")
	ErrSessionExists      = errors.New("платёжная сессия уже создана")
)

// OrderStore операции хранилища, нужные жизненному циклу заказа
type OrderStore interface {
	GetEnabledLocation(id uint) (*ds.Location, error)
	GetGameData(id uint) (*ds.GameData, error)
	GetEnabledPackage(id uint) (*ds.GamePackage, error)
	GetServerByID(id uint) (*ds.GameServer, error)

	CreateOrder(order *ds.GameServerOrder) error
	CreateFreeOrderAtomic(order *ds.GameServerOrder, maxFree int) error
	AttachPaymentSession(orderID uint, sessionID string) error
	GetOrderBySessionID(sessionID string) (*ds.GameServerOrder, error)
	MarkOrderPaid(orderID uint, paidAt time.Time) (bool, error)
	MarkOrderActive(orderID, serverID uint) error
	MarkOrderCreationFailed(orderID uint) error

	CreateServer(server *ds.GameServer) error
	UpdateServerBuild(id uint, cpuPercent, ramMb, diskMb int, expiresAt time.Time) error
	MarkServerPaid(id uint, expiresAt time.Time) error
}

// PaymentClient платёжный провайдер
type PaymentClient interface {
	CreateCheckoutSession(ctx context.Context, params payment.CreateSessionParams) (*payment.Session, error)
}

// PanelClient хостинг-панель
type PanelClient interface {
	CreateServer(ctx context.Context, params panel.CreateServerParams) (*panel.Server, error)
	UpdateServerBuild(ctx context.Context, identifier string, params panel.UpdateBuildParams) error
}

// Mailer отправка подтверждений
type Mailer interface {
	SendBookingConfirmation(to string, inv mail.Invoice) error
}

// FreeTierLimits лимиты бесплатного тарифа из конфигурации
type FreeTierLimits struct {
	MaxServers   int
	CPUPercent   int
	RAMMb        int
	DiskMb       int
	DurationDays int
}

// Request запрос на оформление заказа (дискриминированный union по Type)
type Request struct {
	Type       string
	Hardware   ds.HardwareConfig // NEW, UPGRADE; для FREE_SERVER берётся только LocationID
	PackageID  uint              // PACKAGE
	ServerID   uint              // UPGRADE, TO_PAYED
	GameDataID uint              // NEW, PACKAGE, FREE_SERVER
	// Срок для TO_PAYED (железо сервера сохраняется)
	DurationDays int
	GameConfig   json.RawMessage
	ServerName   string
}

// Result итог оформления: заказ и, для платных типов, платёжная сессия
type Result struct {
	Order        *ds.GameServerOrder
	SessionID    string
	ClientSecret string
}

type Service struct {
	store    OrderStore
	payments PaymentClient
	panel    PanelClient
	mailer   Mailer
	freeTier FreeTierLimits

	successURL string
	cancelURL  string

	now func() time.Time
}

func NewService(store OrderStore, payments PaymentClient, panelClient PanelClient, mailer Mailer,
	freeTier FreeTierLimits, successURL, cancelURL string) *Service {
	return &Service{
		store:      store,
		payments:   payments,
		panel:      panelClient,
		mailer:     mailer,
		freeTier:   freeTier,
		successURL: successURL,
		cancelURL:  cancelURL,
		now:        time.Now,
	}
}

// CreateOrder проводит запрос через валидацию, расчёт цены и запись
// заказа. Любая ошибка валидации возвращается до первой записи в БД -
// частичных заказов не остаётся.
func (s *Service) CreateOrder(ctx context.Context, user *ds.User, req Request) (*Result, error) {
	switch req.Type {
	case ds.OrderTypeNew:
		return s.createNew(ctx, user, req)
	case ds.OrderTypePackage:
		return s.createFromPackage(ctx, user, req)
	case ds.OrderTypeUpgrade:
		return s.createUpgrade(ctx, user, req)
	case ds.OrderTypeToPayed:
		return s.createToPayed(ctx, user, req)
	case ds.OrderTypeFreeServer:
		return s.createFree(ctx, user, req)
	}
	return nil, ErrUnknownOrderType
}

func (s *Service) createNew(ctx context.Context, user *ds.User, req Request) (*Result, error) {
	if err := req.Hardware.Validate(); err != nil {
		return nil, err
	}

	gameData, err := s.store.GetGameData(req.GameDataID)
	if err != nil {
		return nil, fmt.Errorf("вариант игры не найден: %w", err)
	}

	cfg, err := gameconfig.Validate(gameData.Game.Slug, req.GameConfig)
	if err != nil {
		return nil, err
	}

	location, err := s.store.GetEnabledLocation(req.Hardware.LocationID)
	if err != nil {
		return nil, err
	}

	price := pricing.CalculateNew(*location, req.Hardware.CPUPercent, req.Hardware.RAMMb, req.Hardware.DurationDays)

	order := &ds.GameServerOrder{
		Type:               ds.OrderTypeNew,
		Status:             ds.OrderStatusPending,
		UserID:             user.ID,
		CPUPercent:         req.Hardware.CPUPercent,
		RAMMb:              req.Hardware.RAMMb,
		DiskMb:             req.Hardware.DiskMb,
		DurationDays:       req.Hardware.DurationDays,
		PriceCents:         price.TotalCents,
		IdempotencyKey:     uuid.New(),
		CreationGameDataID: gameData.ID,
		CreationLocationID: location.ID,
		GameConfig:         cfg,
		CreatedAt:          s.now(),
	}

	return s.persistAndStartPayment(ctx, user, order, gameData)
}

func (s *Service) createFromPackage(ctx context.Context, user *ds.User, req Request) (*Result, error) {
	pkg, err := s.store.GetEnabledPackage(req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("пакет не найден: %w", err)
	}

	gameData, err := s.store.GetGameData(req.GameDataID)
	if err != nil {
		return nil, fmt.Errorf("вариант игры не найден: %w", err)
	}
	if gameData.GameID != pkg.GameID {
		return nil, fmt.Errorf("вариант игры не относится к игре пакета")
	}

	cfg, err := gameconfig.Validate(gameData.Game.Slug, req.GameConfig)
	if err != nil {
		return nil, err
	}

	// Цена пакета всегда считается движком по железу пакета
	price := pricing.CalculateNew(pkg.Location, pkg.CPUPercent, pkg.RAMMb, pkg.DurationDays)

	order := &ds.GameServerOrder{
		Type:               ds.OrderTypePackage,
		Status:             ds.OrderStatusPending,
		UserID:             user.ID,
		CPUPercent:         pkg.CPUPercent,
		RAMMb:              pkg.RAMMb,
		DiskMb:             pkg.DiskMb,
		DurationDays:       pkg.DurationDays,
		PriceCents:         price.TotalCents,
		IdempotencyKey:     uuid.New(),
		CreationGameDataID: gameData.ID,
		CreationLocationID: pkg.LocationID,
		GameConfig:         cfg,
		CreatedAt:          s.now(),
	}

	return s.persistAndStartPayment(ctx, user, order, gameData)
}

func (s *Service) createUpgrade(ctx context.Context, user *ds.User, req Request) (*Result, error) {
	if err := req.Hardware.Validate(); err != nil {
		return nil, err
	}

	server, err := s.store.GetServerByID(req.ServerID)
	if err != nil {
		return nil, err
	}
	if server.UserID != user.ID {
		return nil, ErrNotYourServer
	}

	// Апгрейд остаётся в локации сервера
	location, err := s.store.GetEnabledLocation(server.LocationID)
	if err != nil {
		return nil, err
	}

	remaining := s.remainingDays(server.ExpiresAt)
	price := pricing.CalculateUpgrade(
		pricing.HardwareSpec{CPUPercent: server.CPUPercent, RAMMb: server.RAMMb, DurationDays: remaining},
		pricing.HardwareSpec{CPUPercent: req.Hardware.CPUPercent, RAMMb: req.Hardware.RAMMb, DurationDays: req.Hardware.DurationDays},
		*location, remaining)

	serverID := server.ID
	order := &ds.GameServerOrder{
		Type:               ds.OrderTypeUpgrade,
		Status:             ds.OrderStatusPending,
		UserID:             user.ID,
		ServerID:           &serverID,
		CPUPercent:         req.Hardware.CPUPercent,
		RAMMb:              req.Hardware.RAMMb,
		DiskMb:             req.Hardware.DiskMb,
		DurationDays:       req.Hardware.DurationDays,
		PriceCents:         price.TotalCents,
		IdempotencyKey:     uuid.New(),
		CreationGameDataID: server.GameDataID,
		CreationLocationID: server.LocationID,
		GameConfig:         []byte("{}"),
		CreatedAt:          s.now(),
	}

	return s.persistAndStartPayment(ctx, user, order, nil)
}

func (s *Service) createToPayed(ctx context.Context, user *ds.User, req Request) (*Result, error) {
	if req.DurationDays <= 0 {
		return nil, ds.ErrInvalidDuration
	}

	server, err := s.store.GetServerByID(req.ServerID)
	if err != nil {
		return nil, err
	}
	if server.UserID != user.ID {
		return nil, ErrNotYourServer
	}
	if !server.FreeServer {
		return nil, ErrServerNotFree
	}

	location, err := s.store.GetEnabledLocation(server.LocationID)
	if err != nil {
		return nil, err
	}

	// Железо сервера сохраняется, оплачивается полный запрошенный срок
	price := pricing.CalculateNew(*location, server.CPUPercent, server.RAMMb, req.DurationDays)

	serverID := server.ID
	order := &ds.GameServerOrder{
		Type:               ds.OrderTypeToPayed,
		Status:             ds.OrderStatusPending,
		UserID:             user.ID,
		ServerID:           &serverID,
		CPUPercent:         server.CPUPercent,
		RAMMb:              server.RAMMb,
		DiskMb:             server.DiskMb,
		DurationDays:       req.DurationDays,
		PriceCents:         price.TotalCents,
		IdempotencyKey:     uuid.New(),
		CreationGameDataID: server.GameDataID,
		CreationLocationID: server.LocationID,
		GameConfig:         []byte("{}"),
		CreatedAt:          s.now(),
	}

	return s.persistAndStartPayment(ctx, user, order, nil)
}

func (s *Service) createFree(ctx context.Context, user *ds.User, req Request) (*Result, error) {
	gameData, err := s.store.GetGameData(req.GameDataID)
	if err != nil {
		return nil, fmt.Errorf("вариант игры не найден: %w", err)
	}

	cfg, err := gameconfig.Validate(gameData.Game.Slug, req.GameConfig)
	if err != nil {
		return nil, err
	}

	location, err := s.store.GetEnabledLocation(req.Hardware.LocationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	paidAt := now

	// Бесплатный заказ создаётся сразу PAID с нулевой ценой;
	// проверка лимита атомарна с записью заказа
	order := &ds.GameServerOrder{
		Type:               ds.OrderTypeFreeServer,
		Status:             ds.OrderStatusPaid,
		UserID:             user.ID,
		CPUPercent:         s.freeTier.CPUPercent,
		RAMMb:              s.freeTier.RAMMb,
		DiskMb:             s.freeTier.DiskMb,
		DurationDays:       s.freeTier.DurationDays,
		PriceCents:         0,
		IdempotencyKey:     uuid.New(),
		CreationGameDataID: gameData.ID,
		CreationLocationID: location.ID,
		GameConfig:         cfg,
		CreatedAt:          now,
		PaidAt:             &paidAt,
	}

	if err := s.store.CreateFreeOrderAtomic(order, s.freeTier.MaxServers); err != nil {
		return nil, err
	}

	// Провижининг синхронный: провал переводит заказ в CREATION_FAILED,
	// а не оставляет его молча оплаченным без сервера
	order.User = *user
	order.CreationGameData = *gameData
	if err := s.provision(ctx, order, req.ServerName); err != nil {
		return nil, err
	}

	return &Result{Order: order}, nil
}

// persistAndStartPayment записывает PENDING заказ и создаёт платёжную
// сессию с его ключом идемпотентности
func (s *Service) persistAndStartPayment(ctx context.Context, user *ds.User, order *ds.GameServerOrder, gameData *ds.GameData) (*Result, error) {
	if err := s.store.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("не удалось сохранить заказ: %w", err)
	}

	order.User = *user
	if gameData != nil {
		order.CreationGameData = *gameData
	}

	session, err := s.startPayment(ctx, order)
	if err != nil {
		// Заказ остаётся PENDING со своим ключом: повторная попытка
		// использует тот же ключ и не создаст вторую сессию
		logrus.Errorf("payment session failed for order %d (user %d): %v", order.ID, order.UserID, err)
		return nil, ErrPaymentUnavailable
	}

	return &Result{Order: order, SessionID: session.ID, ClientSecret: session.ClientSecret}, nil
}

// EnsurePaymentSession создаёт платёжную сессию для существующего
// PENDING заказа без сессии (ретрай после сбоя). Цена и ключ берутся
// из строки заказа и не пересчитываются.
func (s *Service) EnsurePaymentSession(ctx context.Context, order *ds.GameServerOrder) (*Result, error) {
	if order.Status != ds.OrderStatusPending {
		return nil, ErrSessionExists
	}

	session, err := s.startPayment(ctx, order)
	if err != nil {
		logrus.Errorf("payment session retry failed for order %d: %v", order.ID, err)
		return nil, ErrPaymentUnavailable
	}

	return &Result{Order: order, SessionID: session.ID, ClientSecret: session.ClientSecret}, nil
}

func (s *Service) startPayment(ctx context.Context, order *ds.GameServerOrder) (*payment.Session, error) {
	session, err := s.payments.CreateCheckoutSession(ctx, payment.CreateSessionParams{
		AmountCents:    order.PriceCents,
		Description:    s.describeOrder(order),
		IdempotencyKey: order.IdempotencyKey.String(),
		SuccessURL:     s.successURL,
		CancelURL:      s.cancelURL,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.AttachPaymentSession(order.ID, session.ID); err != nil {
		// Сессия уже создана у провайдера; ключ идемпотентности в
		// строке заказа гарантирует, что ретрай получит её же
		return nil, fmt.Errorf("cannot persist session id: %w", err)
	}

	sessionID := session.ID
	order.StripeSessionID = &sessionID
	return session, nil
}

func (s *Service) describeOrder(order *ds.GameServerOrder) string {
	return fmt.Sprintf("Game server %s: %d%% CPU / %d MB RAM / %d days",
		order.Type, order.CPUPercent, order.RAMMb, order.DurationDays)
}

// HandlePaymentSuccess обрабатывает подтверждение оплаты от провайдера.
// Идемпотентна: повторное событие по уже оплаченному заказу - no-op.
func (s *Service) HandlePaymentSuccess(ctx context.Context, sessionID string) error {
	order, err := s.store.GetOrderBySessionID(sessionID)
	if err != nil {
		return err
	}

	transitioned, err := s.store.MarkOrderPaid(order.ID, s.now())
	if err != nil {
		return err
	}
	if !transitioned {
		logrus.Infof("order %d already processed for session %s, skipping", order.ID, sessionID)
		return nil
	}

	return s.provision(ctx, order, "")
}

// provision выполняет побочный эффект оплаченного заказа: создание
// сервера в панели либо применение апгрейда. Провал фиксируется как
// CREATION_FAILED с полным контекстом в логе.
func (s *Service) provision(ctx context.Context, order *ds.GameServerOrder, serverName string) error {
	var err error

	switch order.Type {
	case ds.OrderTypeUpgrade:
		err = s.applyUpgrade(ctx, order)
	case ds.OrderTypeToPayed:
		err = s.applyToPayed(order)
	default:
		err = s.createPanelServer(ctx, order, serverName)
	}

	if err != nil {
		logrus.Errorf("provisioning failed: order=%d user=%d type=%s: %v", order.ID, order.UserID, order.Type, err)
		if markErr := s.store.MarkOrderCreationFailed(order.ID); markErr != nil {
			logrus.Errorf("cannot mark order %d as failed: %v", order.ID, markErr)
		}
		return ErrProvisioningFailed
	}

	return nil
}

func (s *Service) createPanelServer(ctx context.Context, order *ds.GameServerOrder, serverName string) error {
	gameData := order.CreationGameData

	location, err := s.store.GetEnabledLocation(order.CreationLocationID)
	if err != nil {
		return err
	}

	if serverName == "" {
		serverName = fmt.Sprintf("%s-%d", gameData.Game.Slug, order.ID)
	}

	env := map[string]string{}
	if len(order.GameConfig) > 0 {
		env["GAME_CONFIG"] = string(order.GameConfig)
	}

	panelServer, err := s.panel.CreateServer(ctx, panel.CreateServerParams{
		Name:           serverName,
		UserEmail:      order.User.Email,
		LocationName:   location.Name,
		DockerImage:    gameData.DockerImage,
		StartupCommand: gameData.StartupCommand,
		CPUPercent:     order.CPUPercent,
		RAMMb:          order.RAMMb,
		DiskMb:         order.DiskMb,
		Environment:    env,
	})
	if err != nil {
		return err
	}

	expiresAt := s.now().AddDate(0, 0, order.DurationDays)
	server := &ds.GameServer{
		UserID:          order.UserID,
		PanelIdentifier: panelServer.Identifier,
		Name:            serverName,
		LocationID:      order.CreationLocationID,
		GameDataID:      order.CreationGameDataID,
		CPUPercent:      order.CPUPercent,
		RAMMb:           order.RAMMb,
		DiskMb:          order.DiskMb,
		FreeServer:      order.Type == ds.OrderTypeFreeServer,
		Status:          ds.ServerStatusInstalling,
		ExpiresAt:       expiresAt,
		CreatedAt:       s.now(),
	}

	if err := s.store.CreateServer(server); err != nil {
		return err
	}

	if err := s.store.MarkOrderActive(order.ID, server.ID); err != nil {
		return err
	}

	s.sendConfirmation(order, server, expiresAt)
	return nil
}

func (s *Service) applyUpgrade(ctx context.Context, order *ds.GameServerOrder) error {
	server, err := s.store.GetServerByID(*order.ServerID)
	if err != nil {
		return err
	}

	if err := s.panel.UpdateServerBuild(ctx, server.PanelIdentifier, panel.UpdateBuildParams{
		CPUPercent: order.CPUPercent,
		RAMMb:      order.RAMMb,
		DiskMb:     order.DiskMb,
	}); err != nil {
		return err
	}

	// Продление сверх оставшегося срока сдвигает дату окончания
	expiresAt := server.ExpiresAt
	if extended := s.now().AddDate(0, 0, order.DurationDays); extended.After(expiresAt) {
		expiresAt = extended
	}

	if err := s.store.UpdateServerBuild(server.ID, order.CPUPercent, order.RAMMb, order.DiskMb, expiresAt); err != nil {
		return err
	}

	if err := s.store.MarkOrderActive(order.ID, server.ID); err != nil {
		return err
	}

	s.sendConfirmation(order, server, expiresAt)
	return nil
}

func (s *Service) applyToPayed(order *ds.GameServerOrder) error {
	server, err := s.store.GetServerByID(*order.ServerID)
	if err != nil {
		return err
	}

	expiresAt := s.now().AddDate(0, 0, order.DurationDays)
	if err := s.store.MarkServerPaid(server.ID, expiresAt); err != nil {
		return err
	}

	if err := s.store.MarkOrderActive(order.ID, server.ID); err != nil {
		return err
	}

	s.sendConfirmation(order, server, expiresAt)
	return nil
}

// sendConfirmation письмо-подтверждение; сбой почты не откатывает заказ
func (s *Service) sendConfirmation(order *ds.GameServerOrder, server *ds.GameServer, expiresAt time.Time) {
	if order.User.Email == "" {
		return
	}

	paidAt := s.now()
	if order.PaidAt != nil {
		paidAt = *order.PaidAt
	}

	inv := mail.Invoice{
		OrderID:    order.ID,
		ServerName: server.Name,
		GameName:   order.CreationGameData.Game.Name,
		Login:      order.User.Login,
		CPUPercent: order.CPUPercent,
		RAMMb:      order.RAMMb,
		DiskMb:     order.DiskMb,
		PriceCents: order.PriceCents,
		PaidAt:     paidAt,
		ExpiresAt:  expiresAt,
	}

	if err := s.mailer.SendBookingConfirmation(order.User.Email, inv); err != nil {
		logrus.Warnf("cannot send confirmation for order %d: %v", order.ID, err)
	}
}

// remainingDays оставшийся оплаченный срок сервера в целых днях
func (s *Service) remainingDays(expiresAt time.Time) int {
	until := expiresAt.Sub(s.now())
	if until <= 0 {
		return 0
	}
	return int(until.Hours() / 24)
}
