package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nitiprint/nitiprint-api/internal/dto"
	"github.com/nitiprint/nitiprint-api/internal/models"
	"github.com/nitiprint/nitiprint-api/internal/storage"
	appErrors "github.com/nitiprint/nitiprint-api/pkg/errors"
	"github.com/nitiprint/nitiprint-api/pkg/export"
	"github.com/nitiprint/nitiprint-api/pkg/jobs"
	"github.com/nitiprint/nitiprint-api/pkg/notify"
)

type orderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, orderID string) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error
	GetFilesByIDs(ctx context.Context, orderIDs []string) ([]models.OrderFiles, error)
	DeleteByIDs(ctx context.Context, orderIDs []string) (int64, error)
}

type orderArtifacts interface {
	Promote(handle, orderID, originalName string, now time.Time) (string, error)
	StoreProof(content []byte, ext, orderID string, now time.Time) (string, error)
	DeleteOrderFiles(filePath, proofPath string) int
	OpenOrderFile(filePath string) (*os.File, error)
}

type notificationQueue interface {
	Enqueue(job jobs.Job) error
}

// ProofUpload carries the payment-proof image submitted with a confirmation.
type ProofUpload struct {
	Content []byte
	Ext     string
}

// OrderDownload bundles an open order document for streaming.
type OrderDownload struct {
	File         *os.File
	OriginalName string
	SizeBytes    int64
}

// OrderServiceConfig tunes caching behaviour.
type OrderServiceConfig struct {
	CacheTTL time.Duration
}

// OrderService owns order confirmation and the admin order surface.
type OrderService struct {
	repo      orderStore
	artifacts orderArtifacts
	queue     notificationQueue
	cache     *redis.Client
	receipts  *export.ReceiptRenderer
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       OrderServiceConfig
	now       func() time.Time
}

// NewOrderService constructs the service. The cache client and queue are
// optional; a nil cache disables list caching, a nil queue disables
// notifications.
func NewOrderService(repo orderStore, artifacts orderArtifacts, queue notificationQueue, cache *redis.Client, metrics *MetricsService, logger *zap.Logger, cfg OrderServiceConfig) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &OrderService{
		repo:      repo,
		artifacts: artifacts,
		queue:     queue,
		cache:     cache,
		receipts:  export.NewReceiptRenderer(),
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// NotificationJobType identifies queued order notifications.
const NotificationJobType = "order_notification"

// Confirm promotes the staged document, stores the payment proof, applies
// the print-mode override, and records the order. The database insert is the
// fail-closed step; notification delivery is detached and fail-open.
func (s *OrderService) Confirm(ctx context.Context, req dto.ConfirmOrderRequest, proof ProofUpload) (*dto.ConfirmOrderResponse, error) {
	if len(proof.Content) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "payment proof is required")
	}
	if strings.TrimSpace(req.PickupLocation) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "pickup location is required")
	}

	printMode := models.PrintMode(req.PrintMode)
	if printMode == "" {
		printMode = models.PrintModeColor
	}
	finalColor := req.ColorPages
	finalBw := req.BwPages
	if printMode == models.PrintModeGrayscale {
		finalBw += finalColor
		finalColor = 0
	}

	now := s.now()

	proofPath, err := s.artifacts.StoreProof(proof.Content, proof.Ext, req.OrderID, now)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store payment proof")
	}

	finalPath, err := s.artifacts.Promote(req.TempFilename, req.OrderID, req.OriginalName, now)
	if err != nil {
		s.artifacts.DeleteOrderFiles("", proofPath)
		if errors.Is(err, storage.ErrStagedMissing) || errors.Is(err, storage.ErrOutsideRoot) {
			return nil, appErrors.ErrStagingExpired
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to finalize uploaded document")
	}

	order := &models.Order{
		OrderID:         req.OrderID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		TransactionTime: now,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.StatusPendingVerification,
		GrossAmount:     parseAmount(req.TotalAmount),
		ColorPages:      finalColor,
		BwPages:         finalBw,
		Copies:          req.Copies,
		ColorPageRange:  orNA(req.ColorPageRange),
		BwPageRange:     orNA(req.BwPageRange),
		OriginalName:    req.OriginalName,
		FilePath:        finalPath,
		ProofPath:       proofPath,
		PickupLocation:  req.PickupLocation,
		PrintMode:       printMode,
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		// The document was already moved into order storage; it stays there
		// for manual recovery. The confirmation itself fails closed.
		s.logger.Error("order insert failed after promotion",
			zap.String("order_id", order.OrderID), zap.String("file_path", finalPath), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save order")
	}

	s.metrics.ObserveOrderConfirmed()
	s.invalidateListCache(ctx)
	s.enqueueNotification(order)

	return &dto.ConfirmOrderResponse{
		OrderID:         order.OrderID,
		ColorPages:      order.ColorPages,
		BwPages:         order.BwPages,
		Copies:          order.Copies,
		GrossAmount:     order.GrossAmount,
		TransactionTime: order.TransactionTime,
		OriginalName:    order.OriginalName,
		CustomerName:    order.CustomerName,
	}, nil
}

// List returns orders newest-first, optionally filtered by pickup location,
// caching each filter's result until the next write.
func (s *OrderService) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	key := s.listCacheKey(ctx, filter)
	if key != "" {
		if raw, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached []models.Order
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list orders")
	}

	if key != "" {
		if raw, err := json.Marshal(orders); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cfg.CacheTTL).Err(); err != nil {
				s.logger.Warn("order list cache write failed", zap.Error(err))
			}
		}
	}
	return orders, nil
}

// UpdateStatus mutates one order's status. Unknown statuses are accepted for
// compatibility with older admin clients, but logged.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return appErrors.Clone(appErrors.ErrValidation, "status is required")
	}
	tagged := models.OrderStatus(status)
	if !models.KnownStatus(tagged) {
		s.logger.Warn("unknown order status accepted", zap.String("order_id", orderID), zap.String("status", status))
	}
	if err := s.repo.UpdateStatus(ctx, orderID, tagged); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update order status")
	}
	s.invalidateListCache(ctx)
	return nil
}

// BulkDelete removes order files best-effort, then deletes the records. File
// failures are counted and reported; they never block record deletion.
func (s *OrderService) BulkDelete(ctx context.Context, orderIDs []string) (*dto.BulkDeleteResponse, error) {
	files, err := s.repo.GetFilesByIDs(ctx, orderIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load order files")
	}

	failedFiles := 0
	for _, f := range files {
		failedFiles += s.artifacts.DeleteOrderFiles(f.FilePath, f.ProofPath)
	}

	deleted, err := s.repo.DeleteByIDs(ctx, orderIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete orders")
	}

	s.invalidateListCache(ctx)
	return &dto.BulkDeleteResponse{
		DeletedOrders: int(deleted),
		FailedFiles:   failedFiles,
	}, nil
}

// Download opens the stored order document for streaming.
func (s *OrderService) Download(ctx context.Context, orderID string) (*OrderDownload, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	file, err := s.artifacts.OpenOrderFile(order.FilePath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "file not found on server")
	}
	info, err := file.Stat()
	if err != nil {
		file.Close() //nolint:errcheck
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read order file")
	}
	return &OrderDownload{
		File:         file,
		OriginalName: order.OriginalName,
		SizeBytes:    info.Size(),
	}, nil
}

// Receipt renders a PDF receipt for one order.
func (s *OrderService) Receipt(ctx context.Context, orderID string) ([]byte, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	pdf, err := s.receipts.Render(export.ReceiptData{
		OrderID:         order.OrderID,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		TransactionTime: order.TransactionTime.Format(time.RFC3339),
		PickupLocation:  order.PickupLocation,
		PaymentMethod:   order.PaymentMethod,
		Status:          string(order.Status),
		PrintMode:       string(order.PrintMode),
		ColorPages:      order.ColorPages,
		BwPages:         order.BwPages,
		Copies:          order.Copies,
		ColorRange:      order.ColorPageRange,
		GrayscaleRange:  order.BwPageRange,
		GrossAmount:     order.GrossAmount,
		OriginalName:    order.OriginalName,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render receipt")
	}
	return pdf, nil
}

func (s *OrderService) getOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load order")
	}
	return order, nil
}

func (s *OrderService) enqueueNotification(order *models.Order) {
	if s.queue == nil {
		return
	}
	summary := notify.OrderSummary{
		OrderID:        order.OrderID,
		CustomerName:   order.CustomerName,
		CustomerPhone:  order.CustomerPhone,
		PickupLocation: order.PickupLocation,
		PrintMode:      string(order.PrintMode),
		ColorPages:     order.ColorPages,
		BwPages:        order.BwPages,
		Copies:         order.Copies,
		GrossAmount:    order.GrossAmount,
		PaymentMethod:  order.PaymentMethod,
		Filename:       fmt.Sprintf("%s-%s", order.OrderID, order.OriginalName),
	}
	if err := s.queue.Enqueue(jobs.Job{ID: order.OrderID, Type: NotificationJobType, Payload: summary}); err != nil {
		s.logger.Warn("failed to enqueue order notification", zap.String("order_id", order.OrderID), zap.Error(err))
	}
}

// listCacheKey embeds a version counter bumped on every write so stale lists
// simply fall out of addressability.
func (s *OrderService) listCacheKey(ctx context.Context, filter models.OrderFilter) string {
	if s.cache == nil {
		return ""
	}
	ver, err := s.cache.Get(ctx, "orders:ver").Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return ""
	}
	branch := filter.PickupLocation
	if branch == "" {
		branch = "all"
	}
	return fmt.Sprintf("orders:list:v%d:%s", ver, branch)
}

func (s *OrderService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, "orders:ver").Err(); err != nil {
		s.logger.Warn("order list cache invalidation failed", zap.Error(err))
	}
}

func parseAmount(raw string) int64 {
	var amount int64
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			amount = amount*10 + int64(r-'0')
		}
	}
	return amount
}

func orNA(rangeStr string) string {
	if rangeStr == "" {
		return "N/A"
	}
	return rangeStr
}
