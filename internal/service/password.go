package service

import (
	"golang.org/x/crypto/bcrypt"
)

// 測試時可替換
var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// PasswordHasher 雜湊與比對密碼
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// BcryptHasher 以 bcrypt 實作 PasswordHasher
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher cost 超出 bcrypt 範圍時使用 bcrypt.DefaultCost
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash 接收明文密碼，回傳 bcrypt 哈希字串
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// Verify 比對明文密碼與哈希；哈希格式錯誤一律回傳 false
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
