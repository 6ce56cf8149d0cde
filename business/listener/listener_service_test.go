package listener

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"

	"fairTune/domain"
	"fairTune/pkg/utils"
)

// 16 bytes, valid AES key length
const testShareKey = "0123456789abcdef"

type fakeListenerRepo struct {
	listeners map[uint]domain.Listener
	nextID    uint
	clean     map[uint]bool
}

func newFakeListenerRepo() *fakeListenerRepo {
	return &fakeListenerRepo{
		listeners: map[uint]domain.Listener{},
		nextID:    1,
		clean:     map[uint]bool{},
	}
}

func (f *fakeListenerRepo) Create(ctx context.Context, listener *domain.Listener) error {
	listener.ID = f.nextID
	f.nextID++
	f.listeners[listener.ID] = *listener
	return nil
}

func (f *fakeListenerRepo) FindByID(ctx context.Context, id uint) (domain.Listener, error) {
	l, ok := f.listeners[id]
	if !ok {
		return domain.Listener{}, errors.New("listener not found")
	}
	return l, nil
}

func (f *fakeListenerRepo) FindByEmail(ctx context.Context, email string) (domain.Listener, error) {
	for _, l := range f.listeners {
		if l.Email == email {
			return l, nil
		}
	}
	return domain.Listener{}, errors.New("listener not found")
}

func (f *fakeListenerRepo) SetCleanOnly(ctx context.Context, id uint, cleanOnly bool) error {
	f.clean[id] = cleanOnly
	return nil
}

type fakeHistoryRepo struct {
	entries map[uint][]string
	err     error
}

func (f *fakeHistoryRepo) AddEntries(ctx context.Context, listenerID uint, itemIDs []string) error {
	if f.err != nil {
		return f.err
	}
	if f.entries == nil {
		f.entries = map[uint][]string{}
	}
	existing := map[string]bool{}
	for _, id := range f.entries[listenerID] {
		existing[id] = true
	}
	for _, id := range itemIDs {
		if !existing[id] {
			f.entries[listenerID] = append(f.entries[listenerID], id)
			existing[id] = true
		}
	}
	return nil
}

func (f *fakeHistoryRepo) GetItems(ctx context.Context, listenerID uint) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[listenerID], nil
}

type fakeTokenStore struct {
	tokens map[string]string
}

func (f *fakeTokenStore) StoreToken(ctx context.Context, listenerID, role, token string, ttl time.Duration) error {
	if f.tokens == nil {
		f.tokens = map[string]string{}
	}
	f.tokens[listenerID] = token
	return nil
}

func (f *fakeTokenStore) RevokeToken(ctx context.Context, listenerID string) error {
	if _, ok := f.tokens[listenerID]; !ok {
		return errors.New("token not found")
	}
	delete(f.tokens, listenerID)
	return nil
}

func newTestService(repo *fakeListenerRepo, history *fakeHistoryRepo, tokens SessionTokenStore) *listenerService {
	return NewListenerService(repo, history, validator.New(), tokens, testShareKey)
}

func TestRegister(t *testing.T) {
	repo := newFakeListenerRepo()
	svc := newTestService(repo, &fakeHistoryRepo{}, nil)

	created, err := svc.Register(context.Background(), &domain.Listener{
		DisplayName: "Ayu",
		Email:       "ayu@example.com",
		Password:    "hunter22",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if created.ID == 0 {
		t.Error("id not assigned")
	}
	if created.Role != RoleListener {
		t.Errorf("role = %q, want %q", created.Role, RoleListener)
	}
	if created.Password != "" {
		t.Error("password must be cleared in the response")
	}

	stored := repo.listeners[created.ID]
	if stored.Password == "hunter22" {
		t.Error("password stored in plain text")
	}
	if !utils.CheckPasswordHash("hunter22", stored.Password) {
		t.Error("stored hash does not verify")
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"bad email", "not-an-email", "hunter22"},
		{"missing email", "", "hunter22"},
		{"short password", "ayu@example.com", "abc"},
		{"missing password", "ayu@example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newFakeListenerRepo(), &fakeHistoryRepo{}, nil)
			_, err := svc.Register(context.Background(), &domain.Listener{
				Email:    tt.email,
				Password: tt.password,
			})
			if err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeListenerRepo()
	svc := newTestService(repo, &fakeHistoryRepo{}, nil)

	first := &domain.Listener{Email: "ayu@example.com", Password: "hunter22"}
	if _, err := svc.Register(context.Background(), first); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := svc.Register(context.Background(), &domain.Listener{
		Email:    "ayu@example.com",
		Password: "other-pass",
	})
	if err == nil {
		t.Fatal("duplicate email accepted")
	}
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeListenerRepo()
	tokens := &fakeTokenStore{}
	svc := newTestService(repo, &fakeHistoryRepo{}, tokens)

	if _, err := svc.Register(context.Background(), &domain.Listener{
		Email:    "ayu@example.com",
		Password: "hunter22",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, listener, err := svc.Login(context.Background(), "ayu@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if listener.Password != "" {
		t.Error("password must be cleared in the response")
	}

	claims, err := utils.ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.ListenerID != fmt.Sprint(listener.ID) {
		t.Errorf("token listener id = %q, want %d", claims.ListenerID, listener.ID)
	}

	if tokens.tokens[claims.ListenerID] != token {
		t.Error("token not mirrored to the session store")
	}

	if _, _, err := svc.Login(context.Background(), "ayu@example.com", "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter22"); err == nil {
		t.Error("unknown email accepted")
	}

	if err := svc.Logout(context.Background(), listener.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := tokens.tokens[claims.ListenerID]; ok {
		t.Error("session token still present after logout")
	}
	// second logout is a no-op, not an error
	if err := svc.Logout(context.Background(), listener.ID); err != nil {
		t.Errorf("repeated Logout: %v", err)
	}
}

func TestSetCleanOnly(t *testing.T) {
	repo := newFakeListenerRepo()
	svc := newTestService(repo, &fakeHistoryRepo{}, nil)

	if err := svc.SetCleanOnly(context.Background(), 5, true); err != nil {
		t.Fatalf("SetCleanOnly: %v", err)
	}
	if !repo.clean[5] {
		t.Error("flag not persisted")
	}
}

func TestImportHistory(t *testing.T) {
	history := &fakeHistoryRepo{}
	svc := newTestService(newFakeListenerRepo(), history, nil)

	count, err := svc.ImportHistory(context.Background(), 1, []string{"track_1", "", "artist_1", "track_1"})
	if err != nil {
		t.Fatalf("ImportHistory: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3 after dropping the empty id", count)
	}
	if got := len(history.entries[1]); got != 2 {
		t.Errorf("stored %d unique items, want 2", got)
	}

	if _, err := svc.ImportHistory(context.Background(), 1, []string{"", ""}); err == nil {
		t.Error("all-empty import accepted")
	}
}

func TestHistoryShareCodeRoundTrip(t *testing.T) {
	repo := newFakeListenerRepo()
	history := &fakeHistoryRepo{entries: map[uint][]string{}}
	svc := newTestService(repo, history, nil)

	owner, err := svc.Register(context.Background(), &domain.Listener{
		Email:    "owner@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	history.entries[owner.ID] = []string{"track_1", "track_2", "artist_9"}

	code, err := svc.HistoryShareCode(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("HistoryShareCode: %v", err)
	}
	if code == "" {
		t.Fatal("empty share code")
	}

	redeemerID := owner.ID + 1
	copied, err := svc.RedeemHistoryShareCode(context.Background(), redeemerID, code)
	if err != nil {
		t.Fatalf("RedeemHistoryShareCode: %v", err)
	}
	if copied != 3 {
		t.Errorf("copied = %d, want 3", copied)
	}
	if got := len(history.entries[redeemerID]); got != 3 {
		t.Errorf("redeemer history has %d items, want 3", got)
	}

	if _, err := svc.RedeemHistoryShareCode(context.Background(), owner.ID, code); err == nil {
		t.Error("self-redeem accepted")
	}
}

func TestRedeemHistoryShareCodeRejectsBadCodes(t *testing.T) {
	svc := newTestService(newFakeListenerRepo(), &fakeHistoryRepo{}, nil)

	if _, err := svc.RedeemHistoryShareCode(context.Background(), 2, "garbage"); err == nil {
		t.Error("garbage code accepted")
	}

	// a well-formed code whose expiry already passed
	expired := fmt.Sprintf("%v|%v", 1, time.Now().Add(-time.Hour).Unix())
	encrypted, err := goshortcute.AESCBCEncrypt([]byte(expired), []byte(testShareKey))
	if err != nil {
		t.Fatalf("AESCBCEncrypt: %v", err)
	}
	code := goshortcute.StringtoBase64Encode(encrypted)

	if _, err := svc.RedeemHistoryShareCode(context.Background(), 2, code); err == nil {
		t.Error("expired code accepted")
	}
}
