package auth_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/jobcard-management/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("JWT Token Service", func() {
	var (
		tokens *auth.JWTTokenService
		user   *auth.User
	)

	BeforeEach(func() {
		tokens = auth.NewJWTTokenService("test-secret", time.Hour)
		user = &auth.User{
			ID:       42,
			Email:    "admin@mail.com",
			Role:     auth.RoleAdmin,
			IsActive: true,
		}
	})

	Describe("GenerateToken and VerifyToken", func() {
		It("should round-trip the claim set into a session", func() {
			token, expiresAt, err := tokens.GenerateToken(user)
			Expect(err).NotTo(HaveOccurred())
			Expect(token).NotTo(BeEmpty())
			Expect(expiresAt).To(BeTemporally("~", time.Now().Add(time.Hour), 5*time.Second))

			session, err := tokens.VerifyToken(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(session.UserID).To(Equal(int64(42)))
			Expect(session.Email).To(Equal("admin@mail.com"))
			Expect(session.Role).To(Equal(auth.RoleAdmin))
			Expect(session.ExpiresAt).To(BeTemporally("~", expiresAt, time.Second))
		})

		It("should return ErrTokenExpired for an expired token even with a valid signature", func() {
			expired := auth.NewJWTTokenService("test-secret", -time.Hour)
			token, _, err := expired.GenerateToken(user)
			Expect(err).NotTo(HaveOccurred())

			session, err := tokens.VerifyToken(token)
			Expect(err).To(MatchError(auth.ErrTokenExpired))
			Expect(session).To(BeNil())
		})

		It("should return ErrInvalidToken for a token signed with a different secret", func() {
			other := auth.NewJWTTokenService("other-secret", time.Hour)
			token, _, err := other.GenerateToken(user)
			Expect(err).NotTo(HaveOccurred())

			session, err := tokens.VerifyToken(token)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
			Expect(session).To(BeNil())
		})

		It("should return ErrInvalidToken for malformed input", func() {
			for _, bad := range []string{"", "garbage", "a.b.c"} {
				_, err := tokens.VerifyToken(bad)
				Expect(err).To(MatchError(auth.ErrInvalidToken))
			}
		})

		It("should reject a token whose role claim is outside the known set", func() {
			forged := &auth.User{ID: 9, Email: "x@mail.com", Role: auth.Role("SUPERUSER")}
			token, _, err := tokens.GenerateToken(forged)
			Expect(err).NotTo(HaveOccurred())

			_, err = tokens.VerifyToken(token)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})
	})

	Describe("TokenFromRequest", func() {
		It("should read the dedicated cookie", func() {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: auth.AuthCookieName, Value: "cookie-token"})

			token, found := auth.TokenFromRequest(r)
			Expect(found).To(BeTrue())
			Expect(token).To(Equal("cookie-token"))
		})

		It("should fall back to the Authorization header", func() {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", "Bearer header-token")

			token, found := auth.TokenFromRequest(r)
			Expect(found).To(BeTrue())
			Expect(token).To(Equal("header-token"))
		})

		It("should prefer the cookie when both are present", func() {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: auth.AuthCookieName, Value: "cookie-token"})
			r.Header.Set("Authorization", "Bearer header-token")

			token, _ := auth.TokenFromRequest(r)
			Expect(token).To(Equal("cookie-token"))
		})

		It("should report absence without error", func() {
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			token, found := auth.TokenFromRequest(r)
			Expect(found).To(BeFalse())
			Expect(token).To(BeEmpty())
		})

		It("should ignore a non-bearer Authorization header", func() {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

			_, found := auth.TokenFromRequest(r)
			Expect(found).To(BeFalse())
		})
	})
})
