package listener

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"

	"fairTune/domain"
	"fairTune/pkg/logger"
	"fairTune/pkg/utils"
)

// ListenerRepository contract interface
type ListenerRepository interface {
	Create(ctx context.Context, listener *domain.Listener) error
	FindByID(ctx context.Context, id uint) (domain.Listener, error)
	FindByEmail(ctx context.Context, email string) (domain.Listener, error)
	SetCleanOnly(ctx context.Context, id uint, cleanOnly bool) error
}

// HistoryRepository contract interface
type HistoryRepository interface {
	AddEntries(ctx context.Context, listenerID uint, itemIDs []string) error
	GetItems(ctx context.Context, listenerID uint) ([]string, error)
}

// SessionTokenStore mirrors issued JWTs into a fast store so the auth
// middleware can check revocation. Optional; nil disables mirroring.
type SessionTokenStore interface {
	StoreToken(ctx context.Context, listenerID, role, token string, ttl time.Duration) error
	RevokeToken(ctx context.Context, listenerID string) error
}

const (
	RoleListener = "listener"
	RoleAdmin    = "admin"

	// shareCodeTTLHours bounds how long a history share code stays
	// redeemable.
	shareCodeTTLHours = 72

	sessionTokenTTL = 24 * time.Hour
)

type listenerService struct {
	listenerRepo    ListenerRepository
	historyRepo     HistoryRepository
	validate        *validator.Validate
	tokens          SessionTokenStore
	appShareCodeKey string
}

func NewListenerService(
	listenerRepo ListenerRepository,
	historyRepo HistoryRepository,
	validate *validator.Validate,
	tokens SessionTokenStore,
	appShareCodeKey string,
) *listenerService {
	return &listenerService{
		listenerRepo:    listenerRepo,
		historyRepo:     historyRepo,
		validate:        validate,
		tokens:          tokens,
		appShareCodeKey: appShareCodeKey,
	}
}

func (s *listenerService) Register(ctx context.Context, listener *domain.Listener) (domain.Listener, error) {
	if err := s.validate.Var(listener.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.Listener{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(listener.Password, "required,min=6"); err != nil {
		logger.Error("Invalid listener password", err)
		return domain.Listener{}, errors.New("password must be at least 6 characters")
	}

	// Check if email already exists
	existing, err := s.listenerRepo.FindByEmail(ctx, listener.Email)
	if err == nil && existing.ID > 0 {
		logger.Error("Email already exists")
		return domain.Listener{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(listener.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.Listener{}, errors.New("failed to hash password")
	}

	newListener := domain.Listener{
		DisplayName: listener.DisplayName,
		Email:       listener.Email,
		Password:    string(passwordHash),
		Role:        RoleListener,
		CleanOnly:   listener.CleanOnly,
	}

	if err := s.listenerRepo.Create(ctx, &newListener); err != nil {
		logger.Error("Failed to create new listener")
		return domain.Listener{}, err
	}

	newListener.Password = ""
	return newListener, nil
}

func (s *listenerService) Login(ctx context.Context, email, password string) (string, domain.Listener, error) {
	listener, err := s.listenerRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Invalid listener credentials", err)
		return "", domain.Listener{}, err
	}

	ok := utils.CheckPasswordHash(password, listener.Password)
	if !ok {
		logger.Error("Listener password incorrect")
		return "", domain.Listener{}, errors.New("incorrect password")
	}

	listenerIdStr := strconv.FormatUint(uint64(listener.ID), 10)
	token, err := utils.GenerateJWT(listenerIdStr, listener.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.Listener{}, errors.New("failed to generate token")
	}

	if s.tokens != nil {
		if err := s.tokens.StoreToken(ctx, listenerIdStr, listener.Role, token, sessionTokenTTL); err != nil {
			// login still succeeds; middleware falls back to plain JWT checks
			logger.Warn("Failed to mirror session token", err)
		}
	}

	listener.Password = ""
	return token, listener, nil
}

// Logout revokes the mirrored session token. Idempotent; without a
// token store the JWT simply runs out its TTL.
func (s *listenerService) Logout(ctx context.Context, id uint) error {
	if s.tokens == nil {
		return nil
	}

	listenerIdStr := strconv.FormatUint(uint64(id), 10)
	if err := s.tokens.RevokeToken(ctx, listenerIdStr); err != nil {
		logger.Warn("Failed to revoke session token", err)
	}

	return nil
}

// GetProfile retrieves a listener by ID
func (s *listenerService) GetProfile(ctx context.Context, id uint) (domain.Listener, error) {
	listener, err := s.listenerRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get listener by ID", err)
		return domain.Listener{}, err
	}

	listener.Password = ""
	return listener, nil
}

func (s *listenerService) SetCleanOnly(ctx context.Context, id uint, cleanOnly bool) error {
	if err := s.listenerRepo.SetCleanOnly(ctx, id, cleanOnly); err != nil {
		logger.Error("Failed to update clean-only flag", err)
		return err
	}

	return nil
}

// ImportHistory appends listened track and artist ids to the listener's
// history. Duplicates are absorbed by the store. Returns how many ids
// were submitted after dropping empties.
func (s *listenerService) ImportHistory(ctx context.Context, id uint, itemIDs []string) (int, error) {
	cleaned := make([]string, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		if itemID == "" {
			continue
		}
		cleaned = append(cleaned, itemID)
	}
	if len(cleaned) == 0 {
		return 0, errors.New("no history items provided")
	}

	if err := s.historyRepo.AddEntries(ctx, id, cleaned); err != nil {
		logger.Error("Failed to import history", err)
		return 0, err
	}

	return len(cleaned), nil
}

// HistoryShareCode issues a redeemable code another listener can use to
// copy this listener's history into their own.
func (s *listenerService) HistoryShareCode(ctx context.Context, id uint) (string, error) {
	if _, err := s.listenerRepo.FindByID(ctx, id); err != nil {
		logger.Error("Failed to get listener by ID", err)
		return "", err
	}

	expAt := time.Now().Add(time.Hour * shareCodeTTLHours).Unix()

	shareCode := fmt.Sprintf("%v|%v", id, expAt)
	shareCodeEncrypt, err := goshortcute.AESCBCEncrypt([]byte(shareCode), []byte(s.appShareCodeKey))
	if err != nil {
		logger.Error("Failed to encrypt share code", err)
		return "", errors.New("failed to issue share code")
	}

	return goshortcute.StringtoBase64Encode(shareCodeEncrypt), nil
}

// RedeemHistoryShareCode decodes a share code and copies the owner's
// history into the redeemer's. Returns how many items were copied.
func (s *listenerService) RedeemHistoryShareCode(ctx context.Context, redeemerID uint, code string) (int, error) {
	strDecode := goshortcute.StringtoBase64Decode(code)
	shareCodeDecrypt, err := goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.appShareCodeKey))
	if err != nil {
		logger.Error("Redeeming share code error", err)
		return 0, errors.New("invalid or expired share code")
	}

	shareCode := strings.Split(shareCodeDecrypt, "|")
	if len(shareCode) != 2 {
		logger.Error("Redeeming share code error", "code", shareCodeDecrypt)
		return 0, errors.New("invalid or expired share code")
	}

	ownerIDStr := shareCode[0]
	expAtStr := shareCode[1]

	ts, err := strconv.ParseInt(expAtStr, 10, 64)
	if err != nil {
		logger.Error("Redeeming share code error", "code", shareCodeDecrypt)
		return 0, errors.New("invalid or expired share code")
	}
	expAt := time.Unix(ts, 0)
	if time.Now().After(expAt) {
		return 0, errors.New("invalid or expired share code")
	}

	ownerID, err := strconv.ParseUint(ownerIDStr, 10, 64)
	if err != nil {
		logger.Error("Redeeming share code error", "code", shareCodeDecrypt)
		return 0, errors.New("invalid or expired share code")
	}
	if uint(ownerID) == redeemerID {
		return 0, errors.New("cannot redeem your own share code")
	}

	items, err := s.historyRepo.GetItems(ctx, uint(ownerID))
	if err != nil {
		logger.Error("Failed to load shared history", err)
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	if err := s.historyRepo.AddEntries(ctx, redeemerID, items); err != nil {
		logger.Error("Failed to copy shared history", err)
		return 0, err
	}

	return len(items), nil
}
