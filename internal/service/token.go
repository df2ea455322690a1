package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"

	"vehicle-app/internal/model"
)

// Claims 定義 JWT 負載內容。舊版 token 只在 iss 放使用者 id，
// 新簽發的 token 同時寫入 iss 與 sub。
type Claims struct {
	IsAdmin bool `json:"isAdmin"`
	UserID  int  `json:"-"`
	jwt.RegisteredClaims
}

// TokenService 簽發與驗證 HS256 存取權杖
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue 依據使用者資訊產生 JWT，回傳 token 與到期時間
func (s *TokenService) Issue(user *model.User) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	id := strconv.Itoa(user.ID)
	claims := Claims{
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    id,
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, oops.Code(CodePersistence).Public("Failed to issue token").Wrap(err)
	}
	return signed, exp, nil
}

// Verify 驗證簽章、演算法與到期時間，並解析出使用者 id
func (s *TokenService) Verify(token string) (*Claims, error) {
	unauthenticated := oops.Code(CodeUnauthenticated).Public("Unauthenticated")
	if token == "" {
		return nil, unauthenticated.Errorf("missing token")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, unauthenticated.Wrap(err)
	}

	subject := claims.Subject
	if subject == "" {
		subject = claims.Issuer
	}
	id, err := strconv.Atoi(subject)
	if err != nil || id <= 0 {
		return nil, unauthenticated.Errorf("token has no valid user id: %q", subject)
	}
	claims.UserID = id
	return claims, nil
}
