package auth_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/jobcard-management/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// mockAuthService implements auth.ServiceAPI with canned outcomes and a
// call counter for ResolveUser.
type mockAuthService struct {
	user         *auth.User
	err          error
	resolveCalls int
}

func (m *mockAuthService) Authenticate(dto auth.LoginDTO) (string, *auth.User, error) {
	return "", nil, auth.ErrInvalidCredentials
}

func (m *mockAuthService) VerifySession(tokenString string) (*auth.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &auth.Session{UserID: m.user.ID, Email: m.user.Email, Role: m.user.Role}, nil
}

func (m *mockAuthService) LoadUser(userID int64) (*auth.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockAuthService) ResolveUser(tokenString string) (*auth.User, error) {
	m.resolveCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

var _ = Describe("Permission Validator", func() {
	var (
		svc       *mockAuthService
		validator *auth.PermissionValidator
		logger    *slog.Logger
	)

	newRequest := func(token string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/jobcards/pending-approvals", nil)
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		return r
	}

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = &mockAuthService{
			user: &auth.User{ID: 1, Email: "manager@mail.com", Role: auth.RoleManager, IsActive: true},
		}
		validator = auth.NewPermissionValidator(svc, logger)
	})

	Context("when no credential is supplied", func() {
		It("should deny with 401", func() {
			result := validator.Validate(newRequest(""), auth.PermissionPendingApprovals)
			Expect(result.Success).To(BeFalse())
			Expect(result.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(result.Error).To(Equal("missing credentials"))
		})
	})

	Context("when the credential does not resolve", func() {
		It("should deny with 401 for an invalid token", func() {
			svc.err = auth.ErrInvalidToken
			result := validator.Validate(newRequest("bad"), auth.PermissionPendingApprovals)
			Expect(result.Success).To(BeFalse())
			Expect(result.StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("should deny with 401 for a deactivated account", func() {
			svc.err = auth.ErrUserInactive
			result := validator.Validate(newRequest("stale"), auth.PermissionPendingApprovals)
			Expect(result.Success).To(BeFalse())
			Expect(result.StatusCode).To(Equal(http.StatusUnauthorized))
		})
	})

	Context("when the role is outside the allowed set", func() {
		It("should deny with 403", func() {
			svc.user.Role = auth.RoleViewer
			result := validator.Validate(newRequest("ok"), auth.PermissionPendingApprovals)
			Expect(result.Success).To(BeFalse())
			Expect(result.StatusCode).To(Equal(http.StatusForbidden))
		})
	})

	Context("when the role is allowed", func() {
		It("should succeed and carry the resolved user", func() {
			result := validator.Validate(newRequest("ok"), auth.PermissionPendingApprovals)
			Expect(result.Success).To(BeTrue())
			Expect(result.User).NotTo(BeNil())
			Expect(result.User.ID).To(Equal(int64(1)))
		})

		It("should give the same outcome on repeated checks of one request", func() {
			r := newRequest("ok")
			first := validator.Validate(r, auth.PermissionPendingApprovals)
			second := validator.Validate(r, auth.PermissionPendingApprovals)
			Expect(first.Success).To(Equal(second.Success))
			Expect(first.StatusCode).To(Equal(second.StatusCode))
		})
	})

	Context("when the user is already in the request context", func() {
		It("should not resolve the credential again", func() {
			r := newRequest("ok")
			r = r.WithContext(auth.ContextWithUser(r.Context(), svc.user))

			result := validator.Validate(r, auth.PermissionPendingApprovals)
			Expect(result.Success).To(BeTrue())
			Expect(svc.resolveCalls).To(BeZero())
		})
	})

	Context("when a route references an unmapped key", func() {
		It("should fail with 500, not 403", func() {
			result := validator.Validate(newRequest("ok"), auth.PermissionKey("no-such-key"))
			Expect(result.Success).To(BeFalse())
			Expect(result.StatusCode).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("ValidatePermissionMap", func() {
		It("should accept the built-in mapping", func() {
			Expect(auth.ValidatePermissionMap(auth.AllPermissionKeys()...)).To(Succeed())
		})

		It("should reject a referenced key that has no mapping", func() {
			err := auth.ValidatePermissionMap(auth.PermissionKey("typo-key"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("typo-key"))
		})
	})

	Describe("RolesForPermission", func() {
		It("should expose the allowed roles for a key", func() {
			roles, ok := auth.RolesForPermission(auth.PermissionUserAdmin)
			Expect(ok).To(BeTrue())
			Expect(roles).To(ConsistOf(auth.RoleAdmin))
		})
	})
})
